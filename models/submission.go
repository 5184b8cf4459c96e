package models

// Document type discriminator and the multipart part name carrying the PDF.
// The part name doubles as the document field holding the asset reference.
const (
	TypeAbstractSubmission = "abstractSubmission"
	FieldAbstractFile      = "abstractFile"
)

// AssetRef links a document field to an uploaded asset by id.
type AssetRef struct {
	Type string `json:"_type"`
	Ref  string `json:"_ref"`
}

// FileField is the nested file shape the content store expects. The store
// resolves the link only if this exact shape is reproduced.
type FileField struct {
	Type  string   `json:"_type"`
	Asset AssetRef `json:"asset"`
}

// NewFileField builds the reference shape for an uploaded asset.
func NewFileField(assetID string) FileField {
	return FileField{
		Type: "file",
		Asset: AssetRef{
			Type: "reference",
			Ref:  assetID,
		},
	}
}

// Submission represents an abstractSubmission document as stored in the
// content store. Underscore-prefixed fields are server-assigned.
type Submission struct {
	ID           string    `json:"_id,omitempty"`
	Type         string    `json:"_type"`
	CreatedAt    string    `json:"_createdAt,omitempty"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Category     string    `json:"category"`
	Track        string    `json:"track"`
	Address      string    `json:"address"`
	AbstractFile FileField `json:"abstractFile"`
}

// BuildSubmissionDoc assembles the document sent to the store: every
// flattened field, the fixed type discriminator, and the asset reference
// under the file field. A text part that reuses the file field name is
// overwritten by the reference.
func BuildSubmissionDoc(fields map[string]string, assetID string) map[string]any {
	doc := make(map[string]any, len(fields)+2)
	for key, value := range fields {
		doc[key] = value
	}
	doc["_type"] = TypeAbstractSubmission
	doc[FieldAbstractFile] = NewFileField(assetID)
	return doc
}
