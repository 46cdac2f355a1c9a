package generator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mind-engage/quizsheet/internal/sheet"
	"github.com/mind-engage/quizsheet/internal/storage"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func validConfig() Config {
	return Config{Subject: SubjectMath, GradeLevel: 3, Topic: "Addition", NumberOfQuestions: 3, Difficulty: "easy"}
}

func TestConfigValidate(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.Subject = "art" },
		func(c *Config) { c.Topic = " " },
		func(c *Config) { c.NumberOfQuestions = 0 },
		func(c *Config) { c.NumberOfQuestions = MaxQuestions + 1 },
		func(c *Config) { c.Difficulty = "extreme" },
	}
	for i, mut := range bad {
		c := validConfig()
		mut(&c)
		if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("case %d: err = %v", i, err)
		}
	}
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestGenerateWithoutKeyReturnsSamples(t *testing.T) {
	c := &Client{Log: quiet()}
	qs, fromModel, err := c.Generate(context.Background(), validConfig())
	if err != nil || fromModel {
		t.Fatalf("err=%v fromModel=%v", err, fromModel)
	}
	if len(qs) != 3 || qs[0].Question != "What is 5 + 3?" {
		t.Fatalf("samples = %+v", qs)
	}
}

func TestGenerateCallsGemini(t *testing.T) {
	var gotKey, gotPath, gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotPath = r.URL.Path
		var req geminiRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Contents[0].Parts[0].Text
		text := "```json\n[{\"question\":\"2+2?\",\"optionA\":\"3\",\"optionB\":\"4\",\"optionC\":\"5\",\"optionD\":\"6\",\"correctAnswer\":\"B\",\"hint\":\"pairs\"}]\n```"
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}}},
		})
	}))
	defer srv.Close()

	c := &Client{HTTP: srv.Client(), APIKey: "k", Model: "gemini-2.0-flash", BaseURL: srv.URL + "/v1beta", Log: quiet()}
	qs, fromModel, err := c.Generate(context.Background(), validConfig())
	if err != nil || !fromModel {
		t.Fatalf("err=%v fromModel=%v", err, fromModel)
	}
	if gotKey != "k" || gotPath != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Fatalf("key=%q path=%q", gotKey, gotPath)
	}
	if !strings.Contains(gotPrompt, `Generate 3 multiple choice questions for Grade 3 students on the topic of "Addition".`) ||
		!strings.Contains(gotPrompt, "Subject: Mathematics") {
		t.Fatalf("prompt = %s", gotPrompt)
	}
	if len(qs) != 1 || qs[0].CorrectAnswer != "B" || qs[0].WorksheetNo != 1 {
		t.Fatalf("qs = %+v", qs)
	}
}

func TestGenerateFallsBackOnBadModelOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"sorry, no JSON"}]}}]}`)
	}))
	defer srv.Close()
	c := &Client{HTTP: srv.Client(), APIKey: "k", Model: "m", BaseURL: srv.URL, Log: quiet()}
	cfg := validConfig()
	cfg.Subject = SubjectEnglish
	qs, fromModel, err := c.Generate(context.Background(), cfg)
	if err != nil || fromModel || len(qs) != 3 || qs[0].Question != "Which word is a noun?" {
		t.Fatalf("fallback = %+v %v %v", qs, fromModel, err)
	}
}

func TestSampleQuestionsCapped(t *testing.T) {
	cfg := validConfig()
	cfg.NumberOfQuestions = 40
	if got := len(SampleQuestions(cfg)); got != 10 {
		t.Fatalf("samples = %d", got)
	}
}

func TestToCSVAndBack(t *testing.T) {
	qs := []GeneratedQuestion{
		{Question: "Pick the fruit, please", OptionA: "Car", OptionB: "Apple", OptionC: "Desk", OptionD: "Rock", CorrectAnswer: "B", Hint: "You eat it", WorksheetNo: 2},
		{Question: "Empty hint", OptionA: "x", OptionB: "y", OptionC: "z", OptionD: "w", CorrectAnswer: "D", WorksheetNo: 1},
	}
	csv := ToCSV(qs)
	lines := strings.Split(csv, "\n")
	if lines[0] != strings.Join(csvHeader, ",") {
		t.Fatalf("header = %s", lines[0])
	}
	if lines[1] != `"Pick the fruit, please","Car","Apple","Desk","Rock","Apple","You eat it",,,,,MCQ,,2` {
		t.Fatalf("row = %s", lines[1])
	}
	if !strings.Contains(lines[2], `"w","w","",`) {
		t.Fatalf("empty hint should be quoted empty: %s", lines[2])
	}

	back := FromCSV(csv)
	if len(back) != 2 {
		t.Fatalf("back = %+v", back)
	}
	for i := range qs {
		if back[i] != qs[i] {
			t.Fatalf("row %d: %+v != %+v", i, back[i], qs[i])
		}
	}

	// the sheet mapper reads the same file
	res := sheet.MapRows(csv, "fruit", nil)
	if len(res.Questions) != 2 || res.Questions[0].CorrectAnswer() != "B" {
		t.Fatalf("mapped = %+v", res.Questions)
	}
}

func TestToCSVDoublesQuotes(t *testing.T) {
	got := quote(`say "hi"`)
	if got != `"say ""hi"""` {
		t.Fatalf("quote = %s", got)
	}
}

func TestFromCSVExactMatchOnly(t *testing.T) {
	csv := "h\nQ,red,Blue,,,blue,,,,,,,,x"
	qs := FromCSV(csv)
	if len(qs) != 1 || qs[0].CorrectAnswer != "A" || qs[0].WorksheetNo != 1 {
		t.Fatalf("qs = %+v", qs)
	}
}

func TestFetchFromSheetMatchesCaseInsensitive(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, "h\nQ,red,Blue,,,blue,hint,,,,,,,3")
	}))
	defer srv.Close()
	c := &Client{HTTP: srv.Client()}
	qs, err := c.FetchFromSheet(context.Background(), srv.URL+"/d/abc/edit")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(qs) != 1 || qs[0].CorrectAnswer != "B" || qs[0].WorksheetNo != 3 {
		t.Fatalf("qs = %+v", qs)
	}
	if !strings.HasPrefix(gotQuery, "format=csv&t=") {
		t.Fatalf("query = %s", gotQuery)
	}
}

func TestFetchFromSheetHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	c := &Client{HTTP: srv.Client()}
	if _, err := c.FetchFromSheet(context.Background(), srv.URL); err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Fatalf("err = %v", err)
	}
}

func TestPublishFeedsLocalMode(t *testing.T) {
	blobs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	key, err := Publish(blobs, "ws/addition", SampleQuestions(validConfig()))
	if err != nil || key != "ws/addition/questions.csv" {
		t.Fatalf("publish: %s %v", key, err)
	}
	if _, err := Publish(blobs, "", nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("empty name: %v", err)
	}
}

func TestGeneratedQuestionToQuiz(t *testing.T) {
	g := gq("2+2?", "3", "4", "", "", "b", "")
	q, err := g.ToQuestion("d-1", "draft")
	if err != nil || q.CorrectAnswer() != "B" || len(q.Answers()) != 2 {
		t.Fatalf("q = %+v err=%v", q, err)
	}
	g.CorrectAnswer = "D"
	if _, err := g.ToQuestion("d-2", "draft"); err == nil {
		t.Fatal("answer pointing at an empty option should fail")
	}
}
