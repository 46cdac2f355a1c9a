package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/mind-engage/quizsheet/internal/catalog"
	"github.com/mind-engage/quizsheet/internal/quiz"
	"github.com/mind-engage/quizsheet/internal/storage"
)

const maxSheetBytes = 8 << 20

var errNoQuestions = errors.New("no questions found in the sheet")

// Fetcher loads topic questions from Google Sheets or, in local mode, from
// questions.csv files in the blob store. Failures never reach the caller:
// they are logged and the sample set is returned instead.
type Fetcher struct {
	HTTP            *http.Client
	Blobs           storage.BlobStore
	Local           bool
	MasterConfigURL string
	Log             *slog.Logger
	Now             func() time.Time
}

func (f *Fetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Log != nil {
		return f.Log
	}
	return slog.Default()
}

func (f *Fetcher) Questions(ctx context.Context, t catalog.Topic) []quiz.Question {
	qs, err := f.load(ctx, t)
	if err != nil {
		f.logger().Error("fetch questions", "topic", t.ID, "err", err)
		return SampleQuestions(t.ID)
	}
	return qs
}

func (f *Fetcher) load(ctx context.Context, t catalog.Topic) ([]quiz.Question, error) {
	log := f.logger()
	if f.Local {
		dir := t.LocalPath
		if dir == "" {
			dir = t.ID
		}
		key := path.Join(dir, "questions.csv")
		log.Info("loading local worksheet", "topic", t.ID, "key", key)
		text, err := f.readBlob(key)
		if err != nil {
			return nil, err
		}
		// a local file is one worksheet already, so no worksheet filter
		return f.mapped(t.ID, MapRows(text, t.ID, nil)), nil
	}

	if t.SheetURL == "" || strings.HasPrefix(t.SheetURL, "PLACEHOLDER") {
		log.Warn("sheet url not configured, using sample data", "topic", t.ID)
		return SampleQuestions(t.ID), nil
	}

	csvURL := t.SheetURL
	if strings.Contains(csvURL, "/edit") {
		csvURL = EditToExport(csvURL)
	}
	if t.WorksheetGID != "" {
		csvURL = BuildCSVURL(csvURL, t.WorksheetGID)
	}
	scope := "all worksheets"
	if t.WorksheetNumber != nil {
		scope = fmt.Sprintf("worksheet %d", *t.WorksheetNumber)
	}
	log.Info("loading sheet", "topic", t.ID, "scope", scope)

	text, err := Download(ctx, f.HTTP, CacheBust(csvURL, f.now()))
	if err != nil {
		return nil, err
	}
	qs := f.mapped(t.ID, MapRows(text, t.ID, t.WorksheetNumber))
	if len(qs) == 0 {
		return nil, errNoQuestions
	}
	log.Info("loaded questions", "topic", t.ID, "count", len(qs), "scope", scope)
	return qs, nil
}

func (f *Fetcher) mapped(topicID string, res Result) []quiz.Question {
	for _, w := range res.Warnings {
		f.logger().Warn("sheet row fallback", "topic", topicID, "line", w.Line, "question", w.QuestionID, "msg", w.Message)
	}
	return res.Questions
}

// CacheBust appends a t=<unix millis> parameter so a published sheet is not
// served from a stale cache.
func CacheBust(u string, now time.Time) string {
	return u + querySep(u) + "t=" + strconv.FormatInt(now.UnixMilli(), 10)
}

// Download GETs u and returns at most 8 MiB of the body. A nil hc means
// http.DefaultClient. Any non-2xx status is an error.
func Download(ctx context.Context, hc *http.Client, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("HTTP %d: failed to fetch from Google Sheets", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxSheetBytes))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (f *Fetcher) readBlob(key string) (string, error) {
	if f.Blobs == nil {
		return "", errors.New("local mode without a blob store")
	}
	rc, err := f.Blobs.Get(key)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	b, err := io.ReadAll(io.LimitReader(rc, maxSheetBytes))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Worksheets lists the local worksheet packages from master_index.json.
func (f *Fetcher) Worksheets() []catalog.Worksheet {
	if f.Blobs == nil {
		return nil
	}
	rc, err := f.Blobs.Get("master_index.json")
	if err != nil {
		f.logger().Error("fetch worksheets", "err", err)
		return nil
	}
	defer rc.Close()
	ws, err := catalog.ParseWorksheetIndex(rc)
	if err != nil {
		f.logger().Error("fetch worksheets", "err", err)
		return nil
	}
	return ws
}

func (f *Fetcher) master(ctx context.Context) (string, error) {
	if f.MasterConfigURL == "" {
		return "", errors.New("master config url not set")
	}
	return Download(ctx, f.HTTP, CacheBust(f.MasterConfigURL, f.now()))
}

func (f *Fetcher) TopicConfigs(ctx context.Context) []TopicConfig {
	text, err := f.master(ctx)
	if err != nil {
		f.logger().Error("fetch topic config", "err", err)
		return nil
	}
	cfg := ParseTopicConfig(text)
	f.logger().Info("loaded topic config", "count", len(cfg))
	return cfg
}

func (f *Fetcher) Leaderboard(ctx context.Context) []LeaderboardEntry {
	text, err := f.master(ctx)
	if err != nil {
		f.logger().Error("fetch leaderboard", "err", err)
		return nil
	}
	entries := ParseLeaderboard(text)
	f.logger().Info("loaded leaderboard", "count", len(entries))
	return entries
}
