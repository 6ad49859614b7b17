package model

import "time"

// Action identifies a user-triggered workflow operation.
type Action string

const (
	ActionRefresh         Action = "refresh"
	ActionSubmitForReview Action = "send_review"
	ActionUploadDraft     Action = "upload_draft"
	ActionApprove         Action = "approve"
	ActionConvert         Action = "convert_pdf"
	ActionSendFinal       Action = "send_final"
)

// Outcome values recorded for an Activity.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeInvalid = "invalid"
)

// Activity is one journal entry for an action dispatched through the console.
type Activity struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	Filename  string    `json:"filename"`
	Outcome   string    `json:"outcome"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	CreatedAt time.Time `json:"created_at"`
}
