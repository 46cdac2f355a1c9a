package qti

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/mind-engage/quizsheet/internal/quiz"
)

// Export writes qs as a QTI package. Hints and media links
// have no place in the item model used here and are left out.
func Export(w io.Writer, packageID string, qs []quiz.Question) error {
	zw := zip.NewWriter(w)
	mf := manifest{Xmlns: manifestNS, Identifier: ncName(packageID)}
	for i, q := range qs {
		name := fmt.Sprintf("item%03d.xml", i+1)
		item := buildItem(q)
		mf.Resources = append(mf.Resources, resource{
			Identifier: item.Identifier,
			Type:       itemResource,
			Href:       name,
			Files:      []file{{Href: name}},
		})
		if err := writeXML(zw, name, item); err != nil {
			return fmt.Errorf("item %s: %w", q.ID, err)
		}
	}
	if err := writeXML(zw, "imsmanifest.xml", mf); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	return zw.Close()
}

func buildItem(q quiz.Question) assessmentItem {
	it := assessmentItem{
		Xmlns:      itemNS,
		Identifier: ncName(q.ID),
		Title:      q.Text,
		Response:   responseDeclaration{Identifier: responseID, Cardinality: "single", BaseType: "identifier"},
		Body:       itemBody{Paragraphs: []string{q.Text}},
	}
	switch b := q.Body.(type) {
	case quiz.ChoiceBody:
		it.Response.Correct = []string{ncName(b.CorrectID)}
		it.Body.Choice = &interaction{ResponseIdentifier: responseID, MaxChoices: 1, Choices: simpleChoices(b.Answers)}
	case quiz.SequenceBody:
		it.Response.Cardinality = "ordered"
		for _, id := range strings.Split(b.Order, ",") {
			if id = strings.TrimSpace(id); id != "" {
				it.Response.Correct = append(it.Response.Correct, ncName(id))
			}
		}
		it.Body.Order = &interaction{ResponseIdentifier: responseID, Shuffle: true, Choices: simpleChoices(b.Items)}
	default:
		it.Response.BaseType = "string"
		for _, alt := range strings.Split(q.CorrectAnswer(), "|") {
			if alt = strings.TrimSpace(alt); alt != "" {
				it.Response.Correct = append(it.Response.Correct, alt)
			}
		}
		if s := q.FIBSentence(); s != "" {
			it.Body.Paragraphs = append(it.Body.Paragraphs, s)
		}
		it.Body.TextEntry = &textEntry{ResponseIdentifier: responseID}
	}
	return it
}

func simpleChoices(answers []quiz.Answer) []simpleChoice {
	out := make([]simpleChoice, len(answers))
	for i, a := range answers {
		out[i] = simpleChoice{Identifier: ncName(a.ID), Text: a.Text}
	}
	return out
}

func writeXML(zw *zip.Writer, name string, v any) error {
	fw, err := zw.Create(name)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(fw, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(fw)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// ncName makes s usable as an XML identifier: letters, digits, '-', '_'
// and '.', not starting with a digit, '-' or '.'.
func ncName(s string) string {
	out := []rune(s)
	for i, r := range out {
		ok := r == '_' || r == '-' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			out[i] = '_'
		}
	}
	if len(out) == 0 || !(out[0] == '_' || (out[0] >= 'a' && out[0] <= 'z') || (out[0] >= 'A' && out[0] <= 'Z')) {
		return "_" + string(out)
	}
	return string(out)
}
