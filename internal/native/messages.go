package native

// Message is a bus message translated out of the media framework.
type Message interface {
	messageSource() string
}

// MessageError carries a pipeline error.
type MessageError struct {
	Source string
	Text   string
	Debug  string
}

// MessageEOS signals end of stream.
type MessageEOS struct {
	Source string
}

// MessageStateChanged reports a state transition of Source.
type MessageStateChanged struct {
	Source string
	Old    State
	New    State
}

// MessageElement is an application message posted by an element, such as
// the periodic report of a level element.
type MessageElement struct {
	Source    string
	Structure string
	Fields    map[string]any
}

func (m MessageError) messageSource() string { return m.Source }
func (m MessageEOS) messageSource() string { return m.Source }
func (m MessageStateChanged) messageSource() string { return m.Source }
func (m MessageElement) messageSource() string { return m.Source }
