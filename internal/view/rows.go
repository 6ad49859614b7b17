// Package view turns the record list into what the console displays.
// Controls are gated per record for presentation only; the review service
// re-validates every precondition on its side.
package view

import "reviewdesk/internal/model"

// Linker resolves artifact retrieval addresses.
type Linker interface {
	DownloadURL(kind model.ArtifactKind, name string) string
}

// Row is one rendered record.
type Row struct {
	Filename    string `json:"filename"`
	OriginalURL string `json:"original_url"`
	// DraftURL is empty when no draft has been uploaded.
	DraftURL     string `json:"draft_url,omitempty"`
	CanApprove   bool   `json:"can_approve"`
	CanConvert   bool   `json:"can_convert"`
	CanSendFinal bool   `json:"can_send_final"`
}

// BuildRows maps every record to a row, preserving the service's order.
func BuildRows(records []model.DocumentRecord, links Linker) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		row := Row{
			Filename:     r.Filename,
			OriginalURL:  links.DownloadURL(model.ArtifactOriginal, r.Filename),
			CanApprove:   r.HasDraft,
			CanConvert:   r.Approved,
			CanSendFinal: r.Approved,
		}
		if r.HasDraft {
			row.DraftURL = links.DownloadURL(model.ArtifactDraft, r.Filename)
		}
		rows = append(rows, row)
	}
	return rows
}
