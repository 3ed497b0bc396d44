package bot

import "testing"

func TestParseTimeReply(t *testing.T) {
	cases := []struct {
		text         string
		hour, minute int
		ok           bool
	}{
		{"7:5", 7, 5, true},
		{"23.59", 23, 59, true},
		{"  18,30  ", 18, 30, true},
		{"29:59", 29, 59, true},
		{"0:0", 0, 0, true},
		{"30:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"noon", 0, 0, false},
		{"12:30 sharp", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		got, ok := parseTimeReply(tc.text)
		if ok != tc.ok {
			t.Fatalf("parseTimeReply(%q): ok=%v want %v", tc.text, ok, tc.ok)
		}
		if ok && (got.Hour != tc.hour || got.Minute != tc.minute) {
			t.Fatalf("parseTimeReply(%q): got %d:%d want %d:%d", tc.text, got.Hour, got.Minute, tc.hour, tc.minute)
		}
	}
}

func TestSubjectReplyPattern(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"pikachu", true},
		{"  Mewtwo  ", true},
		{"two words", false},
		{"pikachu!", false},
		{"7:30", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := subjectReplyPattern.MatchString(tc.text); got != tc.want {
			t.Fatalf("subject pattern on %q: got %v want %v", tc.text, got, tc.want)
		}
	}
}

func TestExtractCode(t *testing.T) {
	code, ok := extractCode("*Pikachu* at *Old Mill*\n`[abc12DEF]`\n")
	if !ok || code != "abc12DEF" {
		t.Fatalf("extractCode: got %q ok=%v", code, ok)
	}

	if _, ok := extractCode("no code here"); ok {
		t.Fatal("extractCode matched text without a code")
	}
	if _, ok := extractCode("[short1]"); ok {
		t.Fatal("extractCode matched a short token")
	}
}

func TestParseButtonPayload(t *testing.T) {
	code, op, ok := parseButtonPayload("abc12DEF:a")
	if !ok || code != "abc12DEF" || op != opJoin {
		t.Fatalf("parseButtonPayload: got %q %q ok=%v", code, op, ok)
	}

	for _, bad := range []string{"abc12DEF:x", "short:a", "abc12DEF", "abc12DEF:aa", ""} {
		if _, _, ok := parseButtonPayload(bad); ok {
			t.Fatalf("parseButtonPayload accepted %q", bad)
		}
	}
}
