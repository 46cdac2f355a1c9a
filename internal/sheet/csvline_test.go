package sheet

import (
	"reflect"
	"testing"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`a,b,c`, []string{"a", "b", "c"}},
		{` a , b ,c `, []string{"a", "b", "c"}},
		{`"Hello, world",x`, []string{"Hello, world", "x"}},
		{`a,,`, []string{"a", "", ""}},
		{``, []string{""}},
		{`say ""hi"",b`, []string{"say hi", "b"}},
		{`"open, never closed`, []string{"open, never closed"}},
	}
	for _, tc := range cases {
		if got := ParseLine(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseLine(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseLineFieldCount(t *testing.T) {
	// unquoted commas + 1
	if got := len(ParseLine(`1,"2,3",4,,5`)); got != 5 {
		t.Fatalf("fields = %d, want 5", got)
	}
}
