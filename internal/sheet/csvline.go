package sheet

import "strings"

// ParseLine splits one spreadsheet row into fields. A double quote toggles
// the quoted state and is dropped; commas inside quotes are content. There is
// no "" escape: a doubled quote toggles twice. Unbalanced quotes are not an
// error, the rest of the line keeps whatever state it ended in.
func ParseLine(line string) []string {
	out := make([]string, 0, 14)
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			out = append(out, cleanField(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(out, cleanField(cur.String()))
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
