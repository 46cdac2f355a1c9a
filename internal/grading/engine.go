package grading

import (
	"errors"
	"fmt"

	"github.com/mind-engage/quizsheet/internal/quiz"
)

var ErrResponseType = errors.New("unsupported response type")

// Result is the outcome of grading one response. Score is in [0,1].
type Result struct {
	Correct  bool    `json:"correct"`
	Score    float64 `json:"score"`
	Expected string  `json:"expected"` // display text of the right answer
	Feedback string  `json:"feedback,omitempty"`
}

// Strategy grades one question type. response is a string for single
// answers, a []string for multi-select or a map[string]int of sequence
// positions.
type Strategy interface {
	Grade(q quiz.Question, response any) (Result, error)
}

// Grader routes by question type to the matching Strategy.
type Grader interface {
	Grade(q quiz.Question, response any) (Result, error)
}

type defaultGrader struct {
	strategies map[quiz.Type]Strategy
}

func NewDefaultGrader() Grader {
	lit := literalStrategy{}
	return &defaultGrader{strategies: map[quiz.Type]Strategy{
		quiz.TypeMCQ:      choiceStrategy{},
		quiz.TypeTTA:      lit,
		quiz.TypeFIB:      lit,
		quiz.TypeSequence: sequenceStrategy{},
	}}
}

func (g *defaultGrader) Grade(q quiz.Question, response any) (Result, error) {
	s, ok := g.strategies[q.Type()]
	if !ok {
		return Result{}, fmt.Errorf("no strategy for question type %s", q.Type())
	}
	return s.Grade(q, response)
}

func scored(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

// choiceStrategy accepts the chosen option id, or a list of ids graded with
// partial credit against the single correct id.
type choiceStrategy struct{}

func (choiceStrategy) Grade(q quiz.Question, response any) (Result, error) {
	res := Result{Expected: q.AnswerText(q.CorrectAnswer())}
	switch v := response.(type) {
	case string:
		res.Correct = v == q.CorrectAnswer()
		res.Score = scored(res.Correct)
	case []string:
		vr := ValidateWithPartialCredit(v, []string{q.CorrectAnswer()})
		res.Correct, res.Score = vr.IsFullyCorrect, vr.Score
		res.Feedback = Feedback(vr, nil).Message
	default:
		return res, fmt.Errorf("mcq: %w %T", ErrResponseType, response)
	}
	return res, nil
}

type literalStrategy struct{}

func (literalStrategy) Grade(q quiz.Question, response any) (Result, error) {
	v, ok := response.(string)
	if !ok {
		return Result{}, fmt.Errorf("%s: %w %T", q.Type(), ErrResponseType, response)
	}
	correct := CheckAnswer(v, q.CorrectAnswer())
	return Result{Correct: correct, Score: scored(correct), Expected: q.CorrectAnswer()}, nil
}

type sequenceStrategy struct{}

func (sequenceStrategy) Grade(q quiz.Question, response any) (Result, error) {
	res := Result{Expected: q.CorrectAnswer()}
	var order string
	switch v := response.(type) {
	case string:
		order = v
	case map[string]int:
		if err := ValidateSequence(v, len(q.Answers())); err != nil {
			return res, err
		}
		order = SequenceString(v, len(q.Answers()))
	default:
		return res, fmt.Errorf("sequence: %w %T", ErrResponseType, response)
	}
	res.Correct = CheckSequence(order, q.CorrectAnswer())
	res.Score = scored(res.Correct)
	return res, nil
}
