package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestParseValid(t *testing.T) {
	data := []byte(`topics:
  - id: planets
    name: Planets
    difficulty: Easy
    total: 12
    sheet_url: https://docs.google.com/spreadsheets/d/abc/edit
    worksheet_number: 3
    worksheet_gid: "42"
`)
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tp, err := c.Get("planets")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if tp.WorksheetNumber == nil || *tp.WorksheetNumber != 3 || tp.WorksheetGID != "42" {
		t.Fatalf("unexpected topic: %+v", tp)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field": "topics:\n  - id: a\n    colour: red\n",
		"missing id":    "topics:\n  - name: A\n",
		"duplicate id":  "topics:\n  - id: a\n  - id: a\n",
		"two documents": "topics: []\n---\ntopics: []\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if len(c.Topics) != 7 {
		t.Fatalf("expected 7 default topics, got %d", len(c.Topics))
	}
	f, err := c.Get("fractions")
	if err != nil || *f.WorksheetNumber != 7 {
		t.Fatalf("fractions topic: %+v %v", f, err)
	}
	if _, err := c.Get("dinosaurs"); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
}

func TestParseWorksheetIndex(t *testing.T) {
	ws, err := ParseWorksheetIndex(strings.NewReader(`[{"id":"w1","name":"Worksheet 1","path":"/Worksheet 1"}]`))
	if err != nil || len(ws) != 1 || ws[0].Path != "/Worksheet 1" {
		t.Fatalf("index: %+v %v", ws, err)
	}
}
