// Package generator drafts multiple-choice worksheets with Gemini and moves
// them in and out of the 14-column sheet CSV.
package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mind-engage/quizsheet/internal/quiz"
)

type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectEnglish Subject = "english"
)

const MaxQuestions = 50

var ErrInvalidConfig = errors.New("invalid worksheet config")

type Config struct {
	Subject           Subject `json:"subject"`
	GradeLevel        int     `json:"gradeLevel"`
	Topic             string  `json:"topic"`
	Subtopics         string  `json:"subtopics"`
	NumberOfQuestions int     `json:"numberOfQuestions"`
	Difficulty        string  `json:"difficulty"` // easy|medium|hard
}

func (c Config) Validate() error {
	switch {
	case c.Subject != SubjectMath && c.Subject != SubjectEnglish:
		return fmt.Errorf("%w: subject %q", ErrInvalidConfig, c.Subject)
	case strings.TrimSpace(c.Topic) == "":
		return fmt.Errorf("%w: topic is required", ErrInvalidConfig)
	case c.NumberOfQuestions < 1 || c.NumberOfQuestions > MaxQuestions:
		return fmt.Errorf("%w: numberOfQuestions must be 1-%d", ErrInvalidConfig, MaxQuestions)
	case c.GradeLevel < 1:
		return fmt.Errorf("%w: gradeLevel must be positive", ErrInvalidConfig)
	}
	switch c.Difficulty {
	case "easy", "medium", "hard":
		return nil
	}
	return fmt.Errorf("%w: difficulty %q", ErrInvalidConfig, c.Difficulty)
}

type GeneratedQuestion struct {
	Question      string `json:"question"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer"` // A-D
	Hint          string `json:"hint"`
	WorksheetNo   int    `json:"worksheetNo"`
}

func (g GeneratedQuestion) options() [4]string {
	return [4]string{g.OptionA, g.OptionB, g.OptionC, g.OptionD}
}

// AnswerText is the text of the option named by CorrectAnswer.
func (g GeneratedQuestion) AnswerText() string {
	switch strings.ToUpper(strings.TrimSpace(g.CorrectAnswer)) {
	case "A":
		return g.OptionA
	case "B":
		return g.OptionB
	case "C":
		return g.OptionC
	case "D":
		return g.OptionD
	}
	return ""
}

// ToQuestion converts to the quiz model so a draft can be played before it is
// published.
func (g GeneratedQuestion) ToQuestion(id, topicID string) (quiz.Question, error) {
	ids := [4]string{"A", "B", "C", "D"}
	var answers []quiz.Answer
	for i, o := range g.options() {
		if strings.TrimSpace(o) != "" {
			answers = append(answers, quiz.Answer{ID: ids[i], Text: o})
		}
	}
	body, err := quiz.NewMCQ(answers, strings.ToUpper(strings.TrimSpace(g.CorrectAnswer)))
	if err != nil {
		return quiz.Question{}, fmt.Errorf("question %s: %w", id, err)
	}
	ws := g.WorksheetNo
	return quiz.Question{
		ID:    id,
		Text:  g.Question,
		Topic: topicID,
		Meta:  quiz.Meta{Hint: g.Hint, WorksheetNumber: &ws},
		Body:  body,
	}, nil
}
