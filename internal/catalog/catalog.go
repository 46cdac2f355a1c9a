package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrTopicNotFound = errors.New("topic not found")

// Topic is one quiz subject and where its questions come from.
type Topic struct {
	ID              string `yaml:"id" json:"id"`
	Name            string `yaml:"name" json:"name"`
	Icon            string `yaml:"icon" json:"icon"`
	Color           string `yaml:"color" json:"color"`
	Difficulty      string `yaml:"difficulty" json:"difficulty"`
	Total           int    `yaml:"total" json:"total"`
	SheetURL        string `yaml:"sheet_url" json:"sheetUrl"`
	WorksheetNumber *int   `yaml:"worksheet_number,omitempty" json:"worksheetNumber,omitempty"`
	WorksheetGID    string `yaml:"worksheet_gid,omitempty" json:"worksheetGid,omitempty"`
	LocalPath       string `yaml:"local_path,omitempty" json:"localPath,omitempty"`
}

type Catalog struct {
	Topics []Topic `yaml:"topics" json:"topics"`
}

func (c Catalog) Get(id string) (Topic, error) {
	for _, t := range c.Topics {
		if t.ID == id {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("%s: %w", id, ErrTopicNotFound)
}

// Parse reads a YAML catalogue. Unknown keys are rejected so typos in a
// hand-edited file surface at startup.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("parse topics: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Catalog{}, fmt.Errorf("parse topics: multiple YAML documents are not supported")
		}
		return Catalog{}, fmt.Errorf("parse topics: %w", err)
	}
	seen := map[string]bool{}
	for _, t := range c.Topics {
		if t.ID == "" {
			return Catalog{}, fmt.Errorf("parse topics: topic %q has no id", t.Name)
		}
		if seen[t.ID] {
			return Catalog{}, fmt.Errorf("parse topics: duplicate topic id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return c, nil
}

// Load reads the catalogue at path, or returns Default when path is empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read topics: %w", err)
	}
	return Parse(data)
}

func Default() Catalog {
	ws := func(n int) *int { return &n }
	return Catalog{Topics: []Topic{
		{ID: "verbs", Name: "Verbs", Icon: "🏃", Color: "#E91E63", Difficulty: "Medium", Total: 30, SheetURL: "PLACEHOLDER", WorksheetNumber: ws(1)},
		{ID: "tenses", Name: "Tenses", Icon: "🕒", Color: "#9C27B0", Difficulty: "Medium", Total: 35, SheetURL: "PLACEHOLDER", WorksheetNumber: ws(2)},
		{ID: "adverbs", Name: "Adverbs", Icon: "🚀", Color: "#2196F3", Difficulty: "Medium", Total: 30, SheetURL: "PLACEHOLDER", WorksheetNumber: ws(3)},
		{ID: "articles", Name: "Articles", Icon: "🅰️", Color: "#009688", Difficulty: "Medium", Total: 25, SheetURL: "PLACEHOLDER", WorksheetNumber: ws(4)},
		{ID: "punctuation", Name: "Punctuation", Icon: "❗", Color: "#FF9800", Difficulty: "Medium", Total: 15, SheetURL: "PLACEHOLDER", WorksheetNumber: ws(5)},
		{ID: "poetry", Name: "Poetry", Icon: "📜", Color: "#795548", Difficulty: "Medium", Total: 10, SheetURL: "PLACEHOLDER", WorksheetNumber: ws(6)},
		{ID: "fractions", Name: "Fractions", Icon: "🍰", Color: "#4CAF50", Difficulty: "Hard", Total: 60, SheetURL: "PLACEHOLDER", WorksheetNumber: ws(7)},
	}}
}

// Worksheet is an entry of the local worksheet index (master_index.json).
type Worksheet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

func ParseWorksheetIndex(r io.Reader) ([]Worksheet, error) {
	var ws []Worksheet
	if err := json.NewDecoder(r).Decode(&ws); err != nil {
		return nil, fmt.Errorf("worksheet index: %w", err)
	}
	return ws, nil
}
