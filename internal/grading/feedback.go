package grading

type FeedbackType string

const (
	FeedbackSuccess FeedbackType = "success"
	FeedbackWarning FeedbackType = "warning"
	FeedbackError   FeedbackType = "error"
)

// FeedbackText overrides the default messages. Empty fields keep the default.
type FeedbackText struct {
	AllCorrect string `json:"allCorrect,omitempty"`
	Partial    string `json:"partial,omitempty"`
	AllWrong   string `json:"allWrong,omitempty"`
}

type FeedbackMessage struct {
	Message string       `json:"message"`
	Type    FeedbackType `json:"type"`
}

var defaultFeedback = FeedbackText{
	AllCorrect: "Great job! You found all of them!",
	Partial:    "You got some right!",
	AllWrong:   "Let's try again. Look carefully at the options.",
}

func Feedback(r ValidationResult, text *FeedbackText) FeedbackMessage {
	t := defaultFeedback
	if text != nil {
		if text.AllCorrect != "" {
			t.AllCorrect = text.AllCorrect
		}
		if text.Partial != "" {
			t.Partial = text.Partial
		}
		if text.AllWrong != "" {
			t.AllWrong = text.AllWrong
		}
	}
	switch {
	case r.IsFullyCorrect:
		return FeedbackMessage{Message: t.AllCorrect, Type: FeedbackSuccess}
	case len(r.CorrectSelections) == 0:
		return FeedbackMessage{Message: t.AllWrong, Type: FeedbackError}
	default:
		return FeedbackMessage{Message: t.Partial, Type: FeedbackWarning}
	}
}
