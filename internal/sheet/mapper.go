package sheet

import (
	"fmt"
	"strings"

	"github.com/mind-engage/quizsheet/internal/quiz"
)

// Column positions of the worksheet template:
// Question, Option 1-4, Answer, Hint, Know More, Link, YouTube, Image, Type,
// Concept/Subtopic, Worksheet No.
const (
	colQuestion = iota
	colOption1
	colOption2
	colOption3
	colOption4
	colAnswer
	colHint
	colKnowMoreText
	colKnowMoreURL
	colYouTube
	colImage
	colType
	colSubtopic
	colWorksheet

	minColumns = 6
)

var optionIDs = [4]string{"A", "B", "C", "D"}

// Warning reports a row that was mapped with a fallback instead of the data
// the author most likely intended.
type Warning struct {
	Line       int    `json:"line"`
	QuestionID string `json:"question_id"`
	Message    string `json:"message"`
}

type Result struct {
	Questions []quiz.Question `json:"questions"`
	Warnings  []Warning       `json:"warnings,omitempty"`
}

// MapRows turns exported sheet CSV into questions. The first line is a
// header. Blank lines and rows with fewer than six fields are skipped. When
// filter is set, rows tagged with a different worksheet number are dropped;
// untagged rows are kept.
func MapRows(csvText, topicID string, filter *int) Result {
	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	var res Result
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		res.add(i, ParseLine(line), topicID, filter)
	}
	return res
}

// MapTable applies the MapRows column contract to rows that were already
// split into cells, e.g. by a spreadsheet reader. Row 0 is the header.
func MapTable(rows [][]string, topicID string, filter *int) Result {
	var res Result
	for i := 1; i < len(rows); i++ {
		fields := make([]string, len(rows[i]))
		empty := true
		for j, c := range rows[i] {
			fields[j] = strings.TrimSpace(c)
			if fields[j] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		res.add(i, fields, topicID, filter)
	}
	return res
}

func (res *Result) add(line int, parts []string, topicID string, filter *int) {
	if len(parts) < minColumns {
		return
	}
	col := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}

	var worksheet *int
	if raw := col(colWorksheet); raw != "" {
		n, ok := LeadingInt(raw)
		if filter != nil && (!ok || n != *filter) {
			return
		}
		if ok {
			worksheet = &n
		}
	}

	questionText := col(colQuestion)
	options := []string{col(colOption1), col(colOption2), col(colOption3), col(colOption4)}
	answerText := col(colAnswer)
	info := DetectType(questionText, options, col(colType))
	id := fmt.Sprintf("%s-q%d", topicID, line)

	var alternates string
	if strings.Contains(answerText, "|") {
		alternates = answerText
	}

	var body quiz.Body
	switch info.Type {
	case quiz.TypeMCQ:
		answers := make([]quiz.Answer, len(options))
		for j, o := range options {
			answers[j] = quiz.Answer{ID: optionIDs[j], Text: o}
		}
		correct, ok := matchOption(options, answerText)
		if !ok {
			res.Warnings = append(res.Warnings, Warning{
				Line:       line,
				QuestionID: id,
				Message:    fmt.Sprintf("answer %q matches no option, defaulting to A", answerText),
			})
		}
		body = quiz.ChoiceBody{Answers: answers, CorrectID: correct}
	case quiz.TypeFIB:
		accepted := answerText
		if info.HasAnswer {
			accepted = info.Answer
		}
		body = quiz.BlankBody{Sentence: info.FIBSentence, Accepted: accepted}
	case quiz.TypeSequence:
		items := make([]quiz.Answer, 0, len(options))
		for j, o := range options {
			if strings.TrimSpace(o) != "" {
				items = append(items, quiz.Answer{ID: fmt.Sprint(j + 1), Text: o})
			}
		}
		body = quiz.SequenceBody{Items: items, Order: answerText}
	default:
		body = quiz.TextBody{Accepted: answerText}
	}

	res.Questions = append(res.Questions, quiz.Question{
		ID:    id,
		Text:  questionText,
		Topic: topicID,
		Meta: quiz.Meta{
			Hint:            col(colHint),
			KnowMore:        col(colKnowMoreURL),
			KnowMoreText:    col(colKnowMoreText),
			ImageURL:        col(colImage),
			YouTubeURL:      col(colYouTube),
			WorksheetNumber: worksheet,
			Alternates:      alternates,
		},
		Body: body,
	})
}

// matchOption finds the option whose text equals answer, ignoring case and
// surrounding space. A miss falls back to "A".
func matchOption(options []string, answer string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(answer))
	for j, o := range options {
		if j >= len(optionIDs) {
			break
		}
		if strings.ToLower(strings.TrimSpace(o)) == want {
			return optionIDs[j], true
		}
	}
	return optionIDs[0], false
}

// LeadingInt parses an optionally signed run of leading digits, so "4" and
// "4 (revision)" both read as 4.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		n = n*10 + int(s[digits]-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
