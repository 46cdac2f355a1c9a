package sheet

import (
	"strings"
	"testing"

	"github.com/mind-engage/quizsheet/internal/quiz"
)

const header = "Question,Option 1,Option 2,Option 3,Option 4,Answer,Hint,Know More,Link,YouTube,Image,Type,Concept,Worksheet No"

func sheetCSV(rows ...string) string {
	return header + "\n" + strings.Join(rows, "\n")
}

func TestMapRowsWorksheetFilter(t *testing.T) {
	text := sheetCSV(
		"Q1,a,b,,,a,,,,,,,,1",
		"Q2,a,b,,,b,,,,,,,,1",
		"Q3,a,b,,,a,,,,,,,,2",
		"Q4,a,b,,,a,,,,,,,,3",
	)
	one := 1
	res := MapRows(text, "verbs", &one)
	if len(res.Questions) != 2 {
		t.Fatalf("filtered count = %d, want 2", len(res.Questions))
	}
	for _, q := range res.Questions {
		if q.WorksheetNumber == nil || *q.WorksheetNumber != 1 {
			t.Fatalf("question %s has worksheet %v", q.ID, q.WorksheetNumber)
		}
	}
	if all := MapRows(text, "verbs", nil); len(all.Questions) != 4 {
		t.Fatalf("unfiltered count = %d, want 4", len(all.Questions))
	}
}

func TestMapRowsUnparseableWorksheet(t *testing.T) {
	text := sheetCSV("Q1,a,b,,,a,,,,,,,,next", "Q2,a,b,,,a,,,,,,,,")
	two := 2
	res := MapRows(text, "t", &two)
	if len(res.Questions) != 1 || res.Questions[0].Text != "Q2" {
		t.Fatalf("filtered = %+v, want only the untagged row", res.Questions)
	}
	res = MapRows(text, "t", nil)
	if len(res.Questions) != 2 || res.Questions[0].WorksheetNumber != nil {
		t.Fatalf("unfiltered should keep both rows with nil worksheet: %+v", res.Questions)
	}
}

func TestMapRowsShapes(t *testing.T) {
	text := sheetCSV(
		"What is 2+2?,3,4,5,6, four ,,,,,,,,",
		"Pick,red,blue,,,BLUE,a hint,more text,https://k,https://y,https://img,,,",
		"The cat ___ down.,,,,,sat,,,,,,FIB,,",
		"Capital of Peru?,,,,,Lima|lima city,,,,,,,,",
		"Order them,first,second,third,,\"2,1,3\",,,,,,sequence,,",
		"too,short",
		"",
	)
	res := MapRows(text, "mix", nil)
	if len(res.Questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(res.Questions))
	}

	fallback := res.Questions[0]
	if fallback.Type() != quiz.TypeMCQ || fallback.CorrectAnswer() != "A" {
		t.Fatalf("unmatched answer should fall back to A: %+v", fallback)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].QuestionID != "mix-q1" {
		t.Fatalf("warnings = %+v", res.Warnings)
	}

	pick := res.Questions[1]
	if pick.CorrectAnswer() != "B" || len(pick.Answers()) != 4 {
		t.Fatalf("case-insensitive match failed: %+v", pick)
	}
	if pick.Hint != "a hint" || pick.KnowMoreText != "more text" || pick.KnowMore != "https://k" ||
		pick.YouTubeURL != "https://y" || pick.ImageURL != "https://img" {
		t.Fatalf("meta not mapped: %+v", pick.Meta)
	}

	fib := res.Questions[2]
	if fib.Type() != quiz.TypeFIB || fib.CorrectAnswer() != "sat" {
		t.Fatalf("fib = %+v", fib)
	}

	tta := res.Questions[3]
	if tta.Type() != quiz.TypeTTA || tta.MultipleAnswers() != "Lima|lima city" {
		t.Fatalf("tta = %+v", tta)
	}

	seq := res.Questions[4]
	if seq.Type() != quiz.TypeSequence || seq.CorrectAnswer() != "2,1,3" || len(seq.Answers()) != 3 {
		t.Fatalf("sequence = %+v", seq)
	}
	if seq.ID != "mix-q5" {
		t.Fatalf("id = %s, want mix-q5", seq.ID)
	}
}

func TestMapRowsHeaderOnly(t *testing.T) {
	if res := MapRows(header, "x", nil); len(res.Questions) != 0 {
		t.Fatalf("header-only sheet produced %d questions", len(res.Questions))
	}
}

func TestMapTableKeepsQuotedSentence(t *testing.T) {
	rows := [][]string{
		{"Question"},
		{`Fill it. Sentence: The cat "sat" down.`, "", "", "", "", ""},
	}
	res := MapTable(rows, "x", nil)
	if len(res.Questions) != 1 {
		t.Fatalf("got %d questions", len(res.Questions))
	}
	q := res.Questions[0]
	if q.Type() != quiz.TypeFIB || q.CorrectAnswer() != "sat" || !strings.Contains(q.FIBSentence(), quiz.Blank) {
		t.Fatalf("fib = %+v sentence %q", q, q.FIBSentence())
	}
}

func TestMapKeepsAnswerColumnAlternates(t *testing.T) {
	rows := [][]string{
		{"Question"},
		{`Fill it. Sentence: I like "running" every day.`, "", "", "", "", "run|running"},
		{"Capital of France?", "Paris", "Rome", "", "", "Paris|paris"},
		{"Capital of Italy?", "Paris", "Rome", "", "", "Rome"},
	}
	res := MapTable(rows, "x", nil)
	if len(res.Questions) != 3 {
		t.Fatalf("got %d questions", len(res.Questions))
	}
	fib, mcq, single := res.Questions[0], res.Questions[1], res.Questions[2]
	if fib.Type() != quiz.TypeFIB || fib.CorrectAnswer() != "running" || fib.MultipleAnswers() != "run|running" {
		t.Fatalf("fib answer %q alternates %q", fib.CorrectAnswer(), fib.MultipleAnswers())
	}
	if mcq.Type() != quiz.TypeMCQ || mcq.MultipleAnswers() != "Paris|paris" {
		t.Fatalf("mcq alternates %q", mcq.MultipleAnswers())
	}
	if single.MultipleAnswers() != "" {
		t.Fatalf("single answer alternates %q", single.MultipleAnswers())
	}
}

func TestMapTableTrimsCells(t *testing.T) {
	rows := [][]string{
		{"Question"},
		{" Q ", " a ", "b", "", "", " b "},
		{"", "", ""},
	}
	res := MapTable(rows, "x", nil)
	if len(res.Questions) != 1 || res.Questions[0].CorrectAnswer() != "B" {
		t.Fatalf("MapTable = %+v", res)
	}
}

func TestLeadingInt(t *testing.T) {
	cases := map[string]struct {
		n  int
		ok bool
	}{
		"4":       {4, true},
		" 12abc ": {12, true},
		"-3":      {-3, true},
		"abc":     {0, false},
		"":        {0, false},
	}
	for in, want := range cases {
		n, ok := LeadingInt(in)
		if n != want.n || ok != want.ok {
			t.Errorf("LeadingInt(%q) = %d,%v want %d,%v", in, n, ok, want.n, want.ok)
		}
	}
}
