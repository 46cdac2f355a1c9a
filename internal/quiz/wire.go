package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// wireQuestion is the flat JSON shape the browser client consumes.
type wireQuestion struct {
	ID              string   `json:"id"`
	Text            string   `json:"text"`
	Topic           string   `json:"topic,omitempty"`
	Hint            string   `json:"hint,omitempty"`
	KnowMore        string   `json:"knowMore,omitempty"`
	KnowMoreText    string   `json:"knowMoreText,omitempty"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	YouTubeURL      string   `json:"youtubeUrl,omitempty"`
	WorksheetNumber *int     `json:"worksheetNumber,omitempty"`
	Difficulty      string   `json:"difficulty,omitempty"`
	Answers         []Answer `json:"answers"`
	CorrectAnswer   string   `json:"correctAnswer"`
	QuestionType    Type     `json:"questionType"`
	IsFIB           bool     `json:"is_fib"`
	FIBSentence     string   `json:"fib_sentence,omitempty"`
	MultipleAnswers string   `json:"multipleAnswers,omitempty"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	answers := q.Answers()
	if answers == nil {
		answers = []Answer{}
	}
	return json.Marshal(wireQuestion{
		ID:              q.ID,
		Text:            q.Text,
		Topic:           q.Topic,
		Hint:            q.Hint,
		KnowMore:        q.KnowMore,
		KnowMoreText:    q.KnowMoreText,
		ImageURL:        q.ImageURL,
		YouTubeURL:      q.YouTubeURL,
		WorksheetNumber: q.WorksheetNumber,
		Difficulty:      q.Difficulty,
		Answers:         answers,
		CorrectAnswer:   q.CorrectAnswer(),
		QuestionType:    q.Type(),
		IsFIB:           q.Type() == TypeFIB,
		FIBSentence:     q.FIBSentence(),
		MultipleAnswers: q.MultipleAnswers(),
	})
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var w wireQuestion
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	typ := Type(strings.ToUpper(strings.TrimSpace(string(w.QuestionType))))
	if typ == "" {
		switch {
		case w.IsFIB:
			typ = TypeFIB
		case len(w.Answers) >= 2:
			typ = TypeMCQ
		default:
			typ = TypeTTA
		}
	}

	var body Body
	switch typ {
	case TypeMCQ:
		b, err := NewMCQ(w.Answers, w.CorrectAnswer)
		if err != nil {
			return fmt.Errorf("question %q: %w", w.ID, err)
		}
		body = b
	case TypeTTA:
		body = TextBody{Accepted: w.CorrectAnswer}
	case TypeFIB:
		body = BlankBody{Sentence: w.FIBSentence, Accepted: w.CorrectAnswer}
	case TypeSequence:
		body = SequenceBody{Items: w.Answers, Order: w.CorrectAnswer}
	default:
		return fmt.Errorf("question %q: unknown questionType %q", w.ID, w.QuestionType)
	}

	*q = Question{
		ID:    w.ID,
		Text:  w.Text,
		Topic: w.Topic,
		Meta: Meta{
			Hint:            w.Hint,
			KnowMore:        w.KnowMore,
			KnowMoreText:    w.KnowMoreText,
			ImageURL:        w.ImageURL,
			YouTubeURL:      w.YouTubeURL,
			WorksheetNumber: w.WorksheetNumber,
			Difficulty:      w.Difficulty,
		},
		Body: body,
	}
	if w.MultipleAnswers != q.MultipleAnswers() {
		q.Alternates = w.MultipleAnswers
	}
	return nil
}
