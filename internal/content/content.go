// Package content turns tutor replies into render-ready content shapes.
package content

// Kind identifies which Content variant a value is.
type Kind string

const (
	KindPlainText    Kind = "text"
	KindNumberedList Kind = "list"
	KindLesson       Kind = "lesson"
	KindPractice     Kind = "practice"
	KindError        Kind = "error"
)

// Content is the classified, render-ready form of a reply. It is a closed
// set: PlainText, NumberedList, Lesson, Practice and ErrorContent are the
// only implementations.
type Content interface {
	Kind() Kind
	isContent()
}

// PlainText is unstructured text, rendered verbatim with line breaks kept.
type PlainText struct {
	Text string
}

// NumberedList is text whose every line carried a "1." or "1)" prefix.
// Items hold the lines with the numbering stripped.
type NumberedList struct {
	Items []string
}

// Lesson explains a topic through concepts and worked examples.
type Lesson struct {
	Topic    string
	Concepts []string
	Examples []Example
}

// Example is a worked problem inside a Lesson.
type Example struct {
	Problem     string
	Steps       []string
	FinalAnswer string // empty when the tutor gave none
}

// Practice is the tutor's answer to a practice problem.
type Practice struct {
	FinalAnswer string
	Steps       []string
	Explanation string
}

// ErrorContent is an error reported by the tutor or raised while talking
// to it.
type ErrorContent struct {
	Explanation string
}

func (PlainText) Kind() Kind    { return KindPlainText }
func (NumberedList) Kind() Kind { return KindNumberedList }
func (Lesson) Kind() Kind       { return KindLesson }
func (Practice) Kind() Kind     { return KindPractice }
func (ErrorContent) Kind() Kind { return KindError }

func (PlainText) isContent()    {}
func (NumberedList) isContent() {}
func (Lesson) isContent()       {}
func (Practice) isContent()     {}
func (ErrorContent) isContent() {}

// KindOf returns the kind of c, or KindPlainText for nil.
func KindOf(c Content) Kind {
	if c == nil {
		return KindPlainText
	}
	return c.Kind()
}
