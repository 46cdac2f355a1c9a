package qti

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/mind-engage/quizsheet/internal/quiz"
	"github.com/mind-engage/quizsheet/internal/sheet"
)

var ErrNoManifest = errors.New("imsmanifest.xml not found")

const maxEntryBytes = 1 << 20

type Result struct {
	Questions []quiz.Question `json:"questions"`
	Warnings  []sheet.Warning `json:"warnings,omitempty"`
}

// Import reads a QTI package. Single-choice, text-entry and order items
// become questions; anything else is skipped with a warning. Choice ids are
// relabelled A, B, C... and order items 1, 2, 3... in document order.
func Import(r io.ReaderAt, size int64, topicID string) (Result, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Result{}, fmt.Errorf("open package: %w", err)
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[path.Clean(f.Name)] = f
	}
	mfFile, ok := files["imsmanifest.xml"]
	if !ok {
		return Result{}, ErrNoManifest
	}
	var mf manifest
	if err := readXML(mfFile, &mf); err != nil {
		return Result{}, fmt.Errorf("manifest: %w", err)
	}

	var res Result
	n := 0
	for _, rsc := range mf.Resources {
		if !strings.HasPrefix(rsc.Type, "imsqti_item") {
			continue
		}
		n++
		id := fmt.Sprintf("%s-q%d", topicID, n)
		warn := func(msg string) {
			res.Warnings = append(res.Warnings, sheet.Warning{Line: n, QuestionID: id, Message: msg})
		}
		f, ok := files[path.Clean(rsc.Href)]
		if !ok {
			warn("missing item file " + rsc.Href)
			continue
		}
		var it assessmentItem
		if err := readXML(f, &it); err != nil {
			warn("bad item xml: " + err.Error())
			continue
		}
		q, err := toQuestion(it, id, topicID)
		if err != nil {
			warn(err.Error())
			continue
		}
		res.Questions = append(res.Questions, q)
	}
	return res, nil
}

func toQuestion(it assessmentItem, id, topicID string) (quiz.Question, error) {
	var paras []string
	for _, p := range it.Body.Paragraphs {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, p)
		}
	}
	q := quiz.Question{ID: id, Topic: topicID}
	prompt := ""
	switch {
	case it.Body.Choice != nil:
		prompt = it.Body.Choice.Prompt
	case it.Body.Order != nil:
		prompt = it.Body.Order.Prompt
	}
	q.Text = firstNonEmpty(append(paras, prompt, it.Title)...)
	if q.Text == "" {
		return quiz.Question{}, errors.New("item has no text")
	}

	switch {
	case it.Body.Choice != nil:
		if it.Response.Cardinality == "multiple" {
			return quiz.Question{}, errors.New("multiple-response items are not supported")
		}
		answers, ids := relabel(it.Body.Choice.Choices, func(i int) string { return string(rune('A' + i)) })
		correct := ""
		if len(it.Response.Correct) > 0 {
			correct = ids[strings.TrimSpace(it.Response.Correct[0])]
		}
		body, err := quiz.NewMCQ(answers, correct)
		if err != nil {
			return quiz.Question{}, err
		}
		q.Body = body
	case it.Body.Order != nil:
		items, ids := relabel(it.Body.Order.Choices, func(i int) string { return strconv.Itoa(i + 1) })
		order := make([]string, 0, len(it.Response.Correct))
		for _, v := range it.Response.Correct {
			nid, ok := ids[strings.TrimSpace(v)]
			if !ok {
				return quiz.Question{}, fmt.Errorf("order response names unknown item %q", v)
			}
			order = append(order, nid)
		}
		if len(order) != len(items) {
			return quiz.Question{}, errors.New("order response does not cover every item")
		}
		q.Body = quiz.SequenceBody{Items: items, Order: strings.Join(order, ",")}
	case it.Body.TextEntry != nil:
		var alts []string
		for _, v := range it.Response.Correct {
			if v = strings.TrimSpace(v); v != "" {
				alts = append(alts, v)
			}
		}
		if len(alts) == 0 {
			return quiz.Question{}, errors.New("text entry item has no correct response")
		}
		accepted := strings.Join(alts, "|")
		if len(paras) > 1 && strings.Contains(paras[1], quiz.Blank) {
			q.Body = quiz.BlankBody{Sentence: paras[1], Accepted: accepted}
		} else {
			q.Body = quiz.TextBody{Accepted: accepted}
		}
	default:
		return quiz.Question{}, errors.New("unsupported interaction")
	}
	return q, nil
}

// relabel renames choices with label(i) and returns the old -> new id map.
func relabel(choices []simpleChoice, label func(int) string) ([]quiz.Answer, map[string]string) {
	answers := make([]quiz.Answer, len(choices))
	ids := make(map[string]string, len(choices))
	for i, c := range choices {
		answers[i] = quiz.Answer{ID: label(i), Text: strings.TrimSpace(c.Text)}
		ids[c.Identifier] = answers[i].ID
	}
	return answers, ids
}

func readXML(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(io.LimitReader(rc, maxEntryBytes)).Decode(v)
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
