package sheet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{
		{"Question", "Option 1", "Option 2", "Option 3", "Option 4", "Answer"},
		{"Largest planet?", "Mars", "Jupiter", "", "", "jupiter"},
		{"Spell cat", "", "", "", "", "cat"},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := ReadXLSX(&buf, "", "space", nil)
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if len(res.Questions) != 2 {
		t.Fatalf("got %d questions", len(res.Questions))
	}
	if res.Questions[0].CorrectAnswer() != "B" || res.Questions[1].CorrectAnswer() != "cat" {
		t.Fatalf("mapped = %+v", res.Questions)
	}
}

func TestReadXLSXRejectsGarbage(t *testing.T) {
	if _, err := ReadXLSX(bytes.NewReader([]byte("not a zip")), "", "x", nil); err == nil {
		t.Fatal("expected error for non-xlsx input")
	}
}

func TestReadXLSXUnknownSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadXLSX(&buf, "Week 9", "x", nil); !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}
}
