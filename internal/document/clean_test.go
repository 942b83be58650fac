package document

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "line endings", in: "a\r\nb\rc", want: "a\nb\nc"},
		{name: "trims lines and text", in: "  \n  hello  \n  world \n\n", want: "hello\nworld"},
		{name: "collapses blank runs", in: "a\n\n\n\nb", want: "a\n\nb"},
		{name: "drops consecutive duplicates", in: "Header\nHeader\nBody\nBody\nBody", want: "Header\nBody"},
		{
			// Duplicates separated by a blank line are not consecutive.
			name: "keeps duplicates split by blank line",
			in:   "Line1\n\n\n\nLine1\nLine2",
			want: "Line1\n\nLine1\nLine2",
		},
		{name: "inline whitespace", in: "Python\t\t and   SQL", want: "Python and SQL"},
		{name: "dedupe sees trimmed lines", in: "Page 1  \n  Page 1", want: "Page 1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	in := "A\r\n\r\n\r\nA\n B  B \nB  B\n\n"
	once := Clean(in)
	if twice := Clean(once); twice != once {
		t.Fatalf("expected idempotent clean, got %q then %q", once, twice)
	}
}
