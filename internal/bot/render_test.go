package bot

import (
	"strings"
	"testing"

	"raidboard/internal/model"
)

func TestRenderTextCarriesFullState(t *testing.T) {
	raid := &model.Raid{
		Code:    testCode,
		Boss:    &model.Entity{Name: "Mewtwo"},
		Gym:     &model.Entity{Name: "Clock Tower"},
		Hangout: &model.DayTime{Hour: 18, Minute: 5},
	}
	raid.AddParticipant(1, "ash")
	raid.ToggleFlyer(2, "misty")

	text := renderText(raid)

	for _, want := range []string{"Mewtwo", "Clock Tower", "18:05", "[" + testCode + "]", "ash", "misty"} {
		if !strings.Contains(text, want) {
			t.Fatalf("rendering misses %q:\n%s", want, text)
		}
	}

	// The embedded code must be recoverable from the text, since
	// replies are resolved through it.
	code, ok := extractCode(text)
	if !ok || code != testCode {
		t.Fatalf("code not recoverable from rendering: %q ok=%v", code, ok)
	}
}

func TestRenderTextOmitsEmptySections(t *testing.T) {
	raid := &model.Raid{Code: testCode}
	text := renderText(raid)

	if strings.Contains(text, "Attending") || strings.Contains(text, "Flying in") {
		t.Fatalf("empty roster sections rendered:\n%s", text)
	}
	if strings.Contains(text, "Meeting at") {
		t.Fatalf("unset time rendered:\n%s", text)
	}
}

func TestRenderButtonsBindCodeAndOp(t *testing.T) {
	buttons := renderButtons(testCode)
	if len(buttons) != 3 {
		t.Fatalf("buttons: got %d want 3", len(buttons))
	}

	wantOps := []string{opJoin, opLeave, opToggleFlyer}
	for i, b := range buttons {
		code, op, ok := parseButtonPayload(b.Data)
		if !ok || code != testCode || op != wantOps[i] {
			t.Fatalf("button %d payload %q: code=%q op=%q ok=%v", i, b.Data, code, op, ok)
		}
	}
}
