package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "MyTV", want: "MyTV"},
		{in: "  padded  ", want: "padded"},
		{in: "a/b\\c:d", want: "a-b-c-d"},
		{in: `quo"ted<>|?`, want: "quoted"},
		{in: "", want: ""},
	}
	for _, tc := range cases {
		if got := SanitizeFileName(tc.in); got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "My Clip", want: "my_clip"},
		{in: "part.one", want: "part_one"},
		{in: "Already-safe_1", want: "already-safe_1"},
		{in: "", want: "unknown"},
		{in: "///", want: "unknown"},
	}
	for _, tc := range cases {
		if got := SanitizeToken(tc.in); got != tc.want {
			t.Fatalf("SanitizeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
