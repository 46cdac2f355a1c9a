package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/mind-engage/quizsheet/internal/qatext"
	"github.com/mind-engage/quizsheet/internal/quiz"
	"github.com/mind-engage/quizsheet/internal/sheet"
)

// maxUpload caps multipart spreadsheet uploads.
const maxUpload = 16 << 20

// POST /api/qa/parse  { "text": "...", "topicId": "custom" }
func ParseQAHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text    string `json:"text"`
			TopicID string `json:"topicId"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			http.Error(w, "text required", http.StatusBadRequest)
			return
		}
		res := qatext.Parse(req.Text, orDefault(req.TopicID, "custom"))
		if res.Questions == nil {
			res.Questions = []quiz.Question{}
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// POST /api/qa/format  { "questions": [...] }
func FormatQAHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Questions []quiz.Question `json:"questions"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(qatext.Format(req.Questions)))
	}
}

// POST /api/sheets/parse  { "csv": "...", "topicId": "space", "worksheet": 1 }
func ParseSheetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CSV       string `json:"csv"`
			TopicID   string `json:"topicId"`
			Worksheet *int   `json:"worksheet"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		respondJSON(w, http.StatusOK, nonNil(sheet.MapRows(req.CSV, orDefault(req.TopicID, "custom"), req.Worksheet)))
	}
}

// POST /api/sheets/xlsx  multipart: file, topicId, sheet, worksheet
func ParseXLSXHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
		f, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		var filter *int
		if raw := r.FormValue("worksheet"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "worksheet must be a number", http.StatusBadRequest)
				return
			}
			filter = &n
		}
		res, err := sheet.ReadXLSX(f, r.FormValue("sheet"), orDefault(r.FormValue("topicId"), "custom"), filter)
		if errors.Is(err, sheet.ErrSheetNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "read xlsx: "+err.Error(), http.StatusBadRequest)
			return
		}
		respondJSON(w, http.StatusOK, nonNil(res))
	}
}

func nonNil(res sheet.Result) sheet.Result {
	if res.Questions == nil {
		res.Questions = []quiz.Question{}
	}
	return res
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
