package form

// Step identifies the wizard page.
type Step int

const (
	StepPersonal Step = iota + 1
	StepDetails
)

// Status is the tri-state submission outcome shown to the user.
type Status int

const (
	StatusIdle Status = iota
	StatusSuccess
	StatusError
)

// State is one snapshot of the wizard. State values are never mutated in
// place; Reduce returns the successor.
type State struct {
	Step       Step
	Draft      Draft
	Submitting bool
	Status     Status
}

// NewState returns the initial wizard state: step 1, empty draft.
func NewState() State {
	return State{Step: StepPersonal}
}

// CanAdvance reports whether the step-1 continue control is enabled.
func (s State) CanAdvance() bool {
	return s.Step == StepPersonal && s.Draft.PersonalComplete() && !s.Submitting
}

// CanSubmit reports whether the submit control is enabled. It opens exactly
// when every required field and the file are present, and closes while a
// request is in flight.
func (s State) CanSubmit() bool {
	return s.Step == StepDetails && s.Draft.DetailsComplete() && !s.Submitting
}

// Event is a user or transport action applied to the wizard.
type Event interface {
	isEvent()
}

// SetField records a keystroke-level change to a named field.
type SetField struct {
	Name  string
	Value string
}

// AttachFile records a file picked or dropped into the wizard. Both
// acquisition paths go through the same event, so the PDF-only check is
// enforced uniformly.
type AttachFile struct {
	File Attachment
}

// Next advances from step 1 to step 2.
type Next struct{}

// Back returns from step 2 to step 1 without field loss.
type Back struct{}

// SubmitStarted marks the single in-flight request.
type SubmitStarted struct{}

// SubmitSucceeded records an HTTP-ok response.
type SubmitSucceeded struct{}

// SubmitFailed records any transport failure or non-ok response.
type SubmitFailed struct{}

func (SetField) isEvent()        {}
func (AttachFile) isEvent()      {}
func (Next) isEvent()            {}
func (Back) isEvent()            {}
func (SubmitStarted) isEvent()   {}
func (SubmitSucceeded) isEvent() {}
func (SubmitFailed) isEvent()    {}

// Reduce maps (state, event) to the next state. An event whose guard does
// not hold returns the state unchanged.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case SetField:
		if s.Submitting {
			return s
		}
		s.Draft = s.Draft.SetField(e.Name, e.Value)

	case AttachFile:
		if s.Submitting {
			return s
		}
		if e.File.ContentType != PDFContentType {
			// Non-PDF drops are ignored silently, matching the drop target.
			return s
		}
		file := e.File
		s.Draft.File = &file

	case Next:
		if !s.CanAdvance() {
			return s
		}
		s.Step = StepDetails

	case Back:
		if s.Step != StepDetails || s.Submitting {
			return s
		}
		s.Step = StepPersonal

	case SubmitStarted:
		if !s.CanSubmit() {
			return s
		}
		s.Submitting = true
		s.Status = StatusIdle

	case SubmitSucceeded:
		if !s.Submitting {
			return s
		}
		// Draft and file are cleared; the wizard resets to an empty step 1.
		s = State{Step: StepPersonal, Status: StatusSuccess}

	case SubmitFailed:
		if !s.Submitting {
			return s
		}
		// Draft and file are preserved as-is for retry.
		s.Submitting = false
		s.Status = StatusError
	}

	return s
}
