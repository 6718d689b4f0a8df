package postgres

import "testing"

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ana", "ana"},
		{"%%", `\%\%`},
		{"a_b", `a\_b`},
		{`c:\temp`, `c:\\temp`},
		{`100%_done`, `100\%\_done`},
		{"", ""},
	}

	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
