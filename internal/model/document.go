package model

// DocumentRecord is one tracked document as reported by the workflow service.
// The console only ever holds a transient copy for rendering; the service is authoritative.
type DocumentRecord struct {
	Filename string `json:"filename"`
	HasDraft bool   `json:"hasDraft"`
	Approved bool   `json:"approved"`
}

// ArtifactKind names one of the derived artifacts addressed by a record's filename.
type ArtifactKind string

const (
	ArtifactOriginal ArtifactKind = "original"
	ArtifactDraft    ArtifactKind = "draft"
	ArtifactPDF      ArtifactKind = "pdf"
)

// Valid reports whether k is a known artifact kind.
func (k ArtifactKind) Valid() bool {
	switch k {
	case ArtifactOriginal, ArtifactDraft, ArtifactPDF:
		return true
	}
	return false
}
