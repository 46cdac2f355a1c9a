package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/quizsheet/internal/storage"
)

// POST /api/files/{name}  multipart "file": stores <name>/questions.csv for
// a local-mode topic.
func UploadWorksheetFileHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
		f, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		key, err := bs.Put(chi.URLParam(r, "name")+"/questions.csv", f)
		if err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusBadRequest)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]string{"key": key})
	}
}

// GET /api/files/*  returns the blob at whatever follows /api/files/.
func WorksheetFileHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		rc, err := bs.Get(key)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer rc.Close()
		ct := "application/octet-stream"
		switch {
		case strings.HasSuffix(key, ".csv"):
			ct = "text/csv; charset=utf-8"
		case strings.HasSuffix(key, ".json"):
			ct = "application/json"
		}
		w.Header().Set("Content-Type", ct)
		_, _ = io.Copy(w, rc)
	}
}
