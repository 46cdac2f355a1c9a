package qatext

import (
	"strings"

	"github.com/mind-engage/quizsheet/internal/quiz"
)

// Format writes questions back to QA text. A fill-in-the-blank sentence gets
// its first blank replaced by the quoted answer so Parse can recover both.
func Format(questions []quiz.Question) string {
	blocks := make([]string, 0, len(questions))
	for _, q := range questions {
		var sb strings.Builder
		sb.WriteString(q.Text)
		if s := q.FIBSentence(); s != "" {
			sb.WriteString("\n" + prefixSentence + " ")
			sb.WriteString(strings.Replace(s, quiz.Blank, `"`+q.CorrectAnswer()+`"`, 1))
		}
		for _, a := range q.Answers() {
			sb.WriteString("\n" + a.ID + ". " + a.Text)
		}
		sb.WriteString("\n" + prefixAnswer + " " + q.CorrectAnswer())

		opt := func(prefix, v string) {
			if v != "" {
				sb.WriteString("\n" + prefix + " " + v)
			}
		}
		opt(prefixHint, q.Hint)
		opt(prefixKnowMore, q.KnowMore)
		opt(prefixKnowMoreText, q.KnowMoreText)
		opt(prefixImage, q.ImageURL)
		opt(prefixYouTube, q.YouTubeURL)
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n\n")
}
