package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/mind-engage/quizsheet/internal/qti"
	"github.com/mind-engage/quizsheet/internal/quiz"
)

// POST /api/worksheets/qti/export  { "name": "space", "questions": [...] }
func ExportQTIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name      string          `json:"name"`
			Questions []quiz.Question `json:"questions"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if len(req.Questions) == 0 {
			http.Error(w, "questions required", http.StatusBadRequest)
			return
		}
		name := orDefault(req.Name, "worksheet")
		var buf bytes.Buffer
		if err := qti.Export(&buf, name, req.Questions); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"_qti.zip"))
		_, _ = w.Write(buf.Bytes())
	}
}

// POST /api/worksheets/qti/import  multipart: file, topicId
func ImportQTIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		res, err := qti.Import(f, hdr.Size, orDefault(r.FormValue("topicId"), "custom"))
		if errors.Is(err, qti.ErrNoManifest) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if err != nil {
			http.Error(w, "import failed: "+err.Error(), http.StatusBadRequest)
			return
		}
		if res.Questions == nil {
			res.Questions = []quiz.Question{}
		}
		respondJSON(w, http.StatusOK, res)
	}
}
