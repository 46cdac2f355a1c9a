package generator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mind-engage/quizsheet/internal/sheet"
	"github.com/mind-engage/quizsheet/internal/storage"
)

var csvHeader = []string{
	"Question", "Option 1", "Option 2", "Option 3", "Option 4", "Answer", "Hint",
	"Know More", "Link", "YouTube", "Image", "Type", "Concept/Subtopic", "Worksheet No",
}

// ToCSV renders questions in the sheet template. Text cells are always
// quoted with inner quotes doubled; the answer column holds the option text.
func ToCSV(qs []GeneratedQuestion) string {
	lines := make([]string, 0, len(qs)+1)
	lines = append(lines, strings.Join(csvHeader, ","))
	for _, q := range qs {
		row := []string{
			quote(q.Question), quote(q.OptionA), quote(q.OptionB), quote(q.OptionC), quote(q.OptionD),
			quote(q.AnswerText()), quote(q.Hint),
			"", "", "", "", "MCQ", "",
			strconv.Itoa(q.WorksheetNo),
		}
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}

func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// FromCSV reads an exported worksheet back. The answer letter is the first
// option whose text equals the answer column exactly, else A.
func FromCSV(text string) []GeneratedQuestion {
	return fromCSV(text, func(opt, answer string) bool { return opt == answer })
}

func fromCSV(text string, match func(opt, answer string) bool) []GeneratedQuestion {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var out []GeneratedQuestion
	letters := [4]string{"A", "B", "C", "D"}
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		p := sheet.ParseLine(line)
		if len(p) < 6 {
			continue
		}
		at := func(j int) string {
			if j < len(p) {
				return p[j]
			}
			return ""
		}
		q := GeneratedQuestion{
			Question: p[0], OptionA: p[1], OptionB: p[2], OptionC: p[3], OptionD: p[4],
			CorrectAnswer: "A",
			Hint:          at(6),
			WorksheetNo:   1,
		}
		for j, o := range q.options() {
			if match(o, p[5]) {
				q.CorrectAnswer = letters[j]
				break
			}
		}
		if n, ok := sheet.LeadingInt(at(13)); ok && n != 0 {
			q.WorksheetNo = n
		}
		out = append(out, q)
	}
	return out
}

// FetchFromSheet pulls a worksheet straight from a Google Sheets link. The
// answer column is matched to options ignoring case and surrounding space.
func (c *Client) FetchFromSheet(ctx context.Context, sheetURL string) ([]GeneratedQuestion, error) {
	u := sheetURL
	if strings.Contains(u, "/edit") {
		u = sheet.EditToExport(u)
	}
	text, err := sheet.Download(ctx, c.HTTP, sheet.CacheBust(u, time.Now()))
	if err != nil {
		return nil, err
	}
	return fromCSV(text, func(opt, answer string) bool {
		return strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(answer))
	}), nil
}

// Publish writes the worksheet as <name>/questions.csv, the layout the
// local-mode sheet fetcher reads.
func Publish(blobs storage.BlobStore, name string, qs []GeneratedQuestion) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: worksheet name is required", ErrInvalidConfig)
	}
	return blobs.Put(name+"/questions.csv", strings.NewReader(ToCSV(qs)))
}
