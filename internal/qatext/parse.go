// Package qatext reads and writes the plain-text question format used by the
// worksheet editor: blank-line separated blocks of
//
//	Question text
//	A. option
//	B. option
//	Answer: A
//	Hint: ...
package qatext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mind-engage/quizsheet/internal/quiz"
	"github.com/mind-engage/quizsheet/internal/sheet"
)

var (
	blockSep  = regexp.MustCompile(`\n\s*\n`)
	optionRe  = regexp.MustCompile(`(?i)^([A-D])\.\s+(.+)`)
	optStart  = regexp.MustCompile(`(?i)^[A-D]\.\s`)
	sentLead  = regexp.MustCompile(`(?i)^Sentence:\s*`)
	typeForce = "(type expected)"
)

// Field prefixes. Order matters only in that none is a prefix of another.
const (
	prefixAnswer       = "Answer:"
	prefixHint         = "Hint:"
	prefixKnowMore     = "Know More:"
	prefixKnowMoreText = "Know More Text:"
	prefixImage        = "Image:"
	prefixYouTube      = "YouTube:"
	prefixSentence     = "Sentence:"
)

type Result struct {
	Questions []quiz.Question `json:"questions"`
	Warnings  []sheet.Warning `json:"warnings,omitempty"`
}

type block struct {
	text     string
	answers  []quiz.Answer
	answer   string
	sentence string
	quoted   string // answer taken from the quoted part of the sentence
	isFIB    bool
	meta     quiz.Meta
}

// Parse reads QA text into questions. Blocks with fewer than two lines, or
// without both question text and an answer, are dropped. IDs are
// "<topicID>-custom-<block index>".
func Parse(text, topicID string) Result {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var res Result
	for idx, raw := range blockSep.Split(text, -1) {
		lines := strings.Split(strings.TrimSpace(raw), "\n")
		if len(lines) < 2 {
			continue
		}
		b := readBlock(lines)
		if b.answer == "" && b.isFIB {
			b.answer = b.quoted
		}
		if b.text == "" || b.answer == "" {
			continue
		}
		id := fmt.Sprintf("%s-custom-%d", topicID, idx)
		q := quiz.Question{ID: id, Text: b.text, Topic: topicID, Meta: b.meta}

		switch {
		case b.isFIB:
			q.Body = quiz.BlankBody{Sentence: b.sentence, Accepted: b.answer}
		case strings.Contains(strings.ToLower(b.text), typeForce) || len(b.answers) < 2:
			q.Body = quiz.TextBody{Accepted: b.answer}
		default:
			correct, ok := resolveOption(b.answers, b.answer)
			if !ok {
				res.Warnings = append(res.Warnings, sheet.Warning{
					Line:       idx,
					QuestionID: id,
					Message:    fmt.Sprintf("answer %q matches no option, defaulting to %s", b.answer, correct),
				})
			}
			body, err := quiz.NewMCQ(b.answers, correct)
			if err != nil {
				// repeated option letters
				res.Warnings = append(res.Warnings, sheet.Warning{Line: idx, QuestionID: id, Message: err.Error()})
				continue
			}
			q.Body = body
		}
		res.Questions = append(res.Questions, q)
	}
	return res
}

func readBlock(lines []string) block {
	var b block
	i := 0
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if optStart.MatchString(line) || strings.HasPrefix(line, prefixAnswer) || strings.HasPrefix(line, prefixSentence) {
			break
		}
		if b.text != "" {
			b.text += "\n"
		}
		b.text += line
	}

	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		field := func(prefix string) (string, bool) {
			if strings.HasPrefix(line, prefix) {
				return strings.TrimSpace(line[len(prefix):]), true
			}
			return "", false
		}

		if strings.HasPrefix(line, prefixSentence) {
			b.isFIB = true
			full := sentLead.ReplaceAllString(line, "")
			b.sentence = sheet.BlankOut(full)
			if info := sheet.DetectType(line, nil, ""); info.HasAnswer {
				b.quoted = info.Answer
			}
			continue
		}
		if m := optionRe.FindStringSubmatch(line); m != nil {
			b.answers = append(b.answers, quiz.Answer{ID: strings.ToUpper(m[1]), Text: strings.TrimSpace(m[2])})
			continue
		}
		if v, ok := field(prefixAnswer); ok {
			b.answer = v
		} else if v, ok := field(prefixHint); ok {
			b.meta.Hint = v
		} else if v, ok := field(prefixKnowMoreText); ok {
			b.meta.KnowMoreText = v
		} else if v, ok := field(prefixKnowMore); ok {
			b.meta.KnowMore = v
		} else if v, ok := field(prefixImage); ok {
			b.meta.ImageURL = v
		} else if v, ok := field(prefixYouTube); ok {
			b.meta.YouTubeURL = v
		}
	}
	return b
}

// resolveOption maps an Answer: value to an option id, by id first and then
// by option text. A miss falls back to the first option.
func resolveOption(answers []quiz.Answer, answer string) (string, bool) {
	for _, a := range answers {
		if strings.EqualFold(a.ID, answer) {
			return a.ID, true
		}
	}
	for _, a := range answers {
		if strings.EqualFold(strings.TrimSpace(a.Text), answer) {
			return a.ID, true
		}
	}
	return answers[0].ID, false
}
