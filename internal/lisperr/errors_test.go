package lisperr

import "testing"

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"syntax", NewSyntax("unexpected end of input"), "syntax error: unexpected end of input"},
		{"name", NewName("symbol not found: foo"), "name error: symbol not found: foo"},
		{"runtime", NewRuntime("division by zero"), "runtime error: division by zero"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.err.Error(); got != c.want {
				t.Errorf("Error() = %q, want %q", got, c.want)
			}
		})
	}
}
