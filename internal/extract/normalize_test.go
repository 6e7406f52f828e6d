package extract

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text unchanged", "already plain", "already plain"},
		{"strips tags", "<div>Hello <b>World</b></div>", "Hello World"},
		{"drops script with content", "<p>Hi</p><script>var x = 1;</script><p>there</p>", "Hi there"},
		{"drops style with content", "<style>p { color: red; }</style><p>Hi</p>", "Hi"},
		{"nbsp entity", "Hello&nbsp;World", "Hello World"},
		{"nbsp character", "Hello World", "Hello World"},
		{"collapses whitespace", "  a \t b\n\n c  ", "a b c"},
		{"multiline html", "<html>\n<body>\n<p>Rate: $55.00/hr</p>\n</body>\n</html>", "Rate: $55.00/hr"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%q) = %q; want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"<div>Hello&nbsp;<b>World</b></div>",
		"  spaced   out  ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
