package sentiment

import (
	"reflect"
	"testing"
)

func TestSplitConversation(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \n\t\n  ", nil},
		{"single line", "hello there", []string{"hello there"}},
		{"trims and drops blanks", "  I'm tired.  \n\n   \nBut hopeful\n", []string{"I'm tired.", "But hopeful"}},
		{"keeps duplicates and order", "b\na\nb", []string{"b", "a", "b"}},
		{"crlf", "one\r\ntwo\r\n", []string{"one", "two"}},
		{"tabs inside kept", "a\tb", []string{"a\tb"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitConversation(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitConversation(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}
