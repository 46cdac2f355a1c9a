package generator

import (
	"fmt"
	"strings"
)

func buildPrompt(c Config) string {
	subject, focus := "English", fmt.Sprintf("Use vocabulary and concepts suitable for Grade %d", c.GradeLevel)
	if c.Subject == SubjectMath {
		subject, focus = "Mathematics", fmt.Sprintf("Use numbers and calculations appropriate for Grade %d", c.GradeLevel)
	}
	subtopics := ""
	if strings.TrimSpace(c.Subtopics) != "" {
		subtopics = "Subtopics to cover: " + c.Subtopics
	}

	return fmt.Sprintf(`Generate %d multiple choice questions for Grade %d students on the topic of "%s".

Subject: %s
%s
Difficulty: %s

Requirements:
- Each question should have 4 options (A, B, C, D)
- Questions should be age-appropriate for %d-year-old students
- Include a helpful hint for each question
- Make questions engaging and educational
- %s

Return the questions in this exact JSON format (array of objects):
[
  {
    "question": "The question text here",
    "optionA": "First option",
    "optionB": "Second option",
    "optionC": "Third option",
    "optionD": "Fourth option",
    "correctAnswer": "A",
    "hint": "A helpful hint"
  }
]

Only return valid JSON, no additional text.`,
		c.NumberOfQuestions, c.GradeLevel, c.Topic, subject, subtopics, c.Difficulty, c.GradeLevel, focus)
}
