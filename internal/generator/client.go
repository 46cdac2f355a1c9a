package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
)

var (
	ErrNoAPIKey = errors.New("gemini api key not configured")
	fenceRe     = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")
)

// Client talks to the Gemini generateContent REST endpoint.
type Client struct {
	HTTP    *http.Client
	APIKey  string
	Model   string
	BaseURL string
	Log     *slog.Logger
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate drafts a worksheet. Only an invalid config is an error: without
// an API key, or when the model call fails, the built-in samples are
// returned and fromModel is false.
func (c *Client) Generate(ctx context.Context, cfg Config) (qs []GeneratedQuestion, fromModel bool, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	log := c.Log
	if log == nil {
		log = slog.Default()
	}
	qs, err = c.generate(ctx, cfg)
	if err != nil {
		if errors.Is(err, ErrNoAPIKey) {
			log.Warn("no API key configured, returning sample questions")
		} else {
			log.Error("generate worksheet", "topic", cfg.Topic, "err", err)
		}
		return SampleQuestions(cfg), false, nil
	}
	log.Info("generated worksheet", "topic", cfg.Topic, "count", len(qs))
	return qs, true, nil
}

func (c *Client) generate(ctx context.Context, cfg Config) ([]GeneratedQuestion, error) {
	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	body, err := json.Marshal(geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: buildPrompt(cfg)}}}}})
	if err != nil {
		return nil, err
	}
	url := strings.TrimSuffix(c.BaseURL, "/") + "/models/" + c.Model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("gemini: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("gemini: decode: %w", err)
	}
	text := ""
	if len(gr.Candidates) > 0 && len(gr.Candidates[0].Content.Parts) > 0 {
		text = gr.Candidates[0].Content.Parts[0].Text
	}
	return decodeQuestions(text)
}

// decodeQuestions reads the model's JSON array, unwrapping a markdown code
// fence when present. Every question lands on worksheet 1.
func decodeQuestions(text string) ([]GeneratedQuestion, error) {
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	var qs []GeneratedQuestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &qs); err != nil {
		return nil, fmt.Errorf("gemini: parse questions: %w", err)
	}
	if len(qs) == 0 {
		return nil, errors.New("gemini: empty question list")
	}
	for i := range qs {
		qs[i].WorksheetNo = 1
	}
	return qs, nil
}
