package sheet

import "github.com/mind-engage/quizsheet/internal/quiz"

func mcq(id, topic, text, correct string, options ...string) quiz.Question {
	answers := make([]quiz.Answer, len(options))
	for i, o := range options {
		answers[i] = quiz.Answer{ID: optionIDs[i], Text: o}
	}
	return quiz.Question{ID: id, Text: text, Topic: topic, Body: quiz.ChoiceBody{Answers: answers, CorrectID: correct}}
}

// SampleQuestions is the built-in set served when a topic's sheet is not
// configured or cannot be loaded. Unknown topics get nothing.
func SampleQuestions(topicID string) []quiz.Question {
	switch topicID {
	case "space":
		return []quiz.Question{
			mcq("space-q1", "space", "Who took Lily and Max on their space trip?", "A", "Captain Star", "Emma", "Jake", "Columbus"),
			mcq("space-q2", "space", "What planet is known as the Red Planet?", "B", "Venus", "Mars", "Jupiter", "Saturn"),
		}
	case "geography":
		return []quiz.Question{
			mcq("geography-q1", "geography", "What is the capital of France?", "C", "London", "Berlin", "Paris", "Madrid"),
		}
	case "math":
		return []quiz.Question{
			mcq("math-q1", "math", "What is 12 + 8?", "B", "18", "20", "22", "24"),
		}
	case "spell":
		return []quiz.Question{
			mcq("spell-q1", "spell", "Which word is spelled correctly?", "B", "Beatiful", "Beautiful", "Beutiful", "Beautifull"),
		}
	}
	return nil
}
