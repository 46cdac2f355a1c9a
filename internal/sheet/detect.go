package sheet

import (
	"regexp"
	"strings"

	"github.com/mind-engage/quizsheet/internal/quiz"
)

var (
	sentenceRe = regexp.MustCompile(`(?i)Sentence:\s*(.+?"([^"]+)".+)`)
	quotedRe   = regexp.MustCompile(`"[^"]+"`)
)

// TypeInfo is the outcome of DetectType. Answer is only set when the answer
// was extracted from a quoted segment of a "Sentence:" line.
type TypeInfo struct {
	Type        quiz.Type
	IsFIB       bool
	FIBSentence string
	Answer      string
	HasAnswer   bool
}

// DetectType classifies a row. The explicit type column wins over the
// sentence heuristic, which wins over counting options.
func DetectType(questionText string, options []string, typeColumn string) TypeInfo {
	switch strings.ToUpper(strings.TrimSpace(typeColumn)) {
	case "FIB", "FILL IN THE BLANK":
		return TypeInfo{Type: quiz.TypeFIB, IsFIB: true}
	case "TTA", "TYPE THE ANSWER":
		return TypeInfo{Type: quiz.TypeTTA}
	case "SEQUENCE", "ORDER":
		return TypeInfo{Type: quiz.TypeSequence}
	}

	if m := sentenceRe.FindStringSubmatch(questionText); m != nil {
		return TypeInfo{
			Type:        quiz.TypeFIB,
			IsFIB:       true,
			FIBSentence: BlankOut(m[1]),
			Answer:      m[2],
			HasAnswer:   true,
		}
	}

	valid := 0
	for _, o := range options {
		if strings.TrimSpace(o) != "" {
			valid++
		}
	}
	if valid >= 2 {
		return TypeInfo{Type: quiz.TypeMCQ}
	}
	return TypeInfo{Type: quiz.TypeTTA}
}

// BlankOut replaces every double-quoted segment with quiz.Blank.
func BlankOut(sentence string) string {
	return quotedRe.ReplaceAllLiteralString(sentence, quiz.Blank)
}
