// Package form implements the client side of the submission pipeline: the
// draft value object, the two-step wizard state machine, and the multipart
// submitter. The wizard is a pure reducer so any frontend (the CLI in
// cmd/submit, a browser UI) drives the same gates.
package form

// PDFContentType is the only attachment type the wizard accepts.
const PDFContentType = "application/pdf"

// Draft is the in-memory, not-yet-submitted collection of field values and
// the attached file.
type Draft struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Category  string
	Track     string
	Address   string
	File      *Attachment
}

// Attachment is a file picked or dropped into the wizard. Content is held
// in memory, as a browser holds the selected File.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

// SetField returns a copy of the draft with the named field replaced.
// Names match the multipart part names. Unknown names leave the draft
// unchanged.
func (d Draft) SetField(name, value string) Draft {
	switch name {
	case "firstName":
		d.FirstName = value
	case "lastName":
		d.LastName = value
	case "email":
		d.Email = value
	case "phone":
		d.Phone = value
	case "category":
		d.Category = value
	case "track":
		d.Track = value
	case "address":
		d.Address = value
	}
	return d
}

// Fields returns the text fields under their wire names.
func (d Draft) Fields() map[string]string {
	return map[string]string{
		"firstName": d.FirstName,
		"lastName":  d.LastName,
		"email":     d.Email,
		"phone":     d.Phone,
		"category":  d.Category,
		"track":     d.Track,
		"address":   d.Address,
	}
}

// PersonalComplete reports whether every step-1 field is filled.
func (d Draft) PersonalComplete() bool {
	return d.FirstName != "" && d.LastName != "" && d.Email != "" && d.Phone != ""
}

// DetailsComplete reports whether every step-2 field is filled and a file
// is attached.
func (d Draft) DetailsComplete() bool {
	return d.Category != "" && d.Track != "" && d.Address != "" && d.File != nil
}

// Complete reports whether the draft satisfies both gates.
func (d Draft) Complete() bool {
	return d.PersonalComplete() && d.DetailsComplete()
}
