package quiz

import (
	"errors"
	"strings"
)

type Type string

const (
	TypeMCQ      Type = "MCQ"
	TypeTTA      Type = "TTA"
	TypeFIB      Type = "FIB"
	TypeSequence Type = "SEQUENCE"
)

// Blank replaces the answer segment of a fill-in-the-blank sentence.
const Blank = "__________"

var (
	ErrInvalidMCQ    = errors.New("mcq needs at least two answers and a correct id among them")
	ErrEmptyQuestion = errors.New("question text is required")
)

type Answer struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Body is the type-specific payload of a Question. The set of
// implementations is closed: ChoiceBody, TextBody, BlankBody, SequenceBody.
type Body interface {
	Type() Type
	correct() string
	sealed()
}

type ChoiceBody struct {
	Answers   []Answer
	CorrectID string
}

type TextBody struct {
	Accepted string // pipe-separated alternates allowed
}

type BlankBody struct {
	Sentence string // template containing Blank; may be empty
	Accepted string
}

type SequenceBody struct {
	Items []Answer
	Order string // comma-separated item ids, first to last
}

func (ChoiceBody) Type() Type   { return TypeMCQ }
func (TextBody) Type() Type     { return TypeTTA }
func (BlankBody) Type() Type    { return TypeFIB }
func (SequenceBody) Type() Type { return TypeSequence }

func (b ChoiceBody) correct() string   { return b.CorrectID }
func (b TextBody) correct() string     { return b.Accepted }
func (b BlankBody) correct() string    { return b.Accepted }
func (b SequenceBody) correct() string { return b.Order }

func (ChoiceBody) sealed()   {}
func (TextBody) sealed()     {}
func (BlankBody) sealed()    {}
func (SequenceBody) sealed() {}

// Meta holds the optional presentation fields shared by every question type.
type Meta struct {
	Hint            string
	KnowMore        string // URL
	KnowMoreText    string
	ImageURL        string
	YouTubeURL      string
	WorksheetNumber *int
	Difficulty      string
	// Alternates is the answer column as the author wrote it, kept when it
	// lists pipe-separated alternates.
	Alternates string
}

type Question struct {
	ID    string
	Text  string
	Topic string
	Meta
	Body Body
}

// NewMCQ validates the multiple-choice invariant before building the body.
func NewMCQ(answers []Answer, correctID string) (ChoiceBody, error) {
	if len(answers) < 2 {
		return ChoiceBody{}, ErrInvalidMCQ
	}
	hits := 0
	for _, a := range answers {
		if a.ID == correctID {
			hits++
		}
	}
	if hits != 1 {
		return ChoiceBody{}, ErrInvalidMCQ
	}
	return ChoiceBody{Answers: answers, CorrectID: correctID}, nil
}

func (q Question) Type() Type {
	if q.Body == nil {
		return TypeTTA
	}
	return q.Body.Type()
}

// Answers returns the selectable entries: options for MCQ, items for
// SEQUENCE, nothing otherwise.
func (q Question) Answers() []Answer {
	switch b := q.Body.(type) {
	case ChoiceBody:
		return b.Answers
	case SequenceBody:
		return b.Items
	}
	return nil
}

func (q Question) CorrectAnswer() string {
	if q.Body == nil {
		return ""
	}
	return q.Body.correct()
}

func (q Question) FIBSentence() string {
	if b, ok := q.Body.(BlankBody); ok {
		return b.Sentence
	}
	return ""
}

// MultipleAnswers is the pipe-separated alternates string: the source
// answer column when it had one, else the accepted answers of a literal
// question that allows more than one.
func (q Question) MultipleAnswers() string {
	if q.Alternates != "" {
		return q.Alternates
	}
	switch q.Body.(type) {
	case TextBody, BlankBody:
		if c := q.CorrectAnswer(); strings.Contains(c, "|") {
			return c
		}
	}
	return ""
}

// AnswerText resolves an answer id to its display text for MCQ and SEQUENCE
// questions; for literal types the input is returned unchanged.
func (q Question) AnswerText(id string) string {
	for _, a := range q.Answers() {
		if a.ID == id {
			return a.Text
		}
	}
	return id
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuestion
	}
	if b, ok := q.Body.(ChoiceBody); ok {
		if _, err := NewMCQ(b.Answers, b.CorrectID); err != nil {
			return err
		}
	}
	return nil
}
