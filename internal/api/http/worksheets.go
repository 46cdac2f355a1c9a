package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mind-engage/quizsheet/internal/generator"
	"github.com/mind-engage/quizsheet/internal/quiz"
	"github.com/mind-engage/quizsheet/internal/sheet"
	"github.com/mind-engage/quizsheet/internal/storage"
)

// Generator drafts worksheets. *generator.Client implements it.
type Generator interface {
	Generate(ctx context.Context, cfg generator.Config) ([]generator.GeneratedQuestion, bool, error)
	FetchFromSheet(ctx context.Context, sheetURL string) ([]generator.GeneratedQuestion, error)
}

// worksheetResponse carries a draft worksheet and the same questions in
// playable form, so the editor can try them before publishing.
type worksheetResponse struct {
	Questions []generator.GeneratedQuestion `json:"questions"`
	Preview   []quiz.Question               `json:"preview"`
	Warnings  []sheet.Warning               `json:"warnings,omitempty"`
	Source    string                        `json:"source,omitempty"` // "gemini" or "sample"
}

func draft(qs []generator.GeneratedQuestion) worksheetResponse {
	res := worksheetResponse{Questions: qs, Preview: []quiz.Question{}}
	if res.Questions == nil {
		res.Questions = []generator.GeneratedQuestion{}
	}
	for i, g := range qs {
		id := fmt.Sprintf("draft-q%d", i+1)
		q, err := g.ToQuestion(id, "draft")
		if err != nil {
			res.Warnings = append(res.Warnings, sheet.Warning{Line: i + 1, QuestionID: id, Message: err.Error()})
			continue
		}
		res.Preview = append(res.Preview, q)
	}
	return res
}

// POST /api/worksheets/generate  generator.Config
func GenerateWorksheetHandler(g Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg generator.Config
		if !decodeJSON(w, r, &cfg) {
			return
		}
		qs, fromModel, err := g.Generate(r.Context(), cfg)
		if errors.Is(err, generator.ErrInvalidConfig) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		res := draft(qs)
		res.Source = "sample"
		if fromModel {
			res.Source = "gemini"
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// POST /api/worksheets/export  { "name": "fractions-1", "questions": [...] }
//
// Without a name the CSV is returned as a download; with one it is also
// published to the blob store where local mode picks it up.
func ExportWorksheetHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name      string                        `json:"name"`
			Questions []generator.GeneratedQuestion `json:"questions"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if len(req.Questions) == 0 {
			http.Error(w, "questions required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Name) != "" {
			key, err := generator.Publish(bs, req.Name, req.Questions)
			if err != nil {
				http.Error(w, "store error: "+err.Error(), http.StatusBadRequest)
				return
			}
			respondJSON(w, http.StatusCreated, map[string]string{"key": key})
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="worksheet.csv"`)
		_, _ = io.WriteString(w, generator.ToCSV(req.Questions))
	}
}

// POST /api/worksheets/import  body: worksheet CSV text
func ImportWorksheetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		qs := generator.FromCSV(string(b))
		if len(qs) == 0 {
			http.Error(w, "no questions found in CSV", http.StatusUnprocessableEntity)
			return
		}
		respondJSON(w, http.StatusOK, draft(qs))
	}
}

// POST /api/worksheets/from-sheet  { "url": "https://docs.google.com/..." }
func WorksheetFromSheetHandler(g Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			URL string `json:"url"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if !strings.HasPrefix(req.URL, "https://") && !strings.HasPrefix(req.URL, "http://") {
			http.Error(w, "url required", http.StatusBadRequest)
			return
		}
		qs, err := g.FetchFromSheet(r.Context(), req.URL)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		respondJSON(w, http.StatusOK, draft(qs))
	}
}
