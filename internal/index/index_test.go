package index

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestLoadJSONNames(t *testing.T) {
	x := New("bosses")
	src := writeSource(t, "bosses.json", `["Pikachu", "Charizard", "Mewtwo"]`)

	if err := x.Load(context.Background(), src); err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if !x.Loaded() {
		t.Fatal("index not marked loaded")
	}
	if got := x.Find("mewtwo", 0.8); got == nil || got.Name != "Mewtwo" {
		t.Fatalf("Find after JSON load: got %+v", got)
	}
}

func TestLoadJSONObjects(t *testing.T) {
	x := New("bosses")
	src := writeSource(t, "bosses.json", `[{"name":"Pikachu"},{"name":"Raikou"}]`)

	if err := x.Load(context.Background(), src); err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if got := x.Find("raikou", 0.8); got == nil || got.Name != "Raikou" {
		t.Fatalf("Find after object JSON load: got %+v", got)
	}
}

func TestLoadCSV(t *testing.T) {
	x := New("gyms")
	src := writeSource(t, "gyms.csv", "Central Park\nOld Mill\nTown Hall\n")

	if err := x.Load(context.Background(), src); err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if got := x.Find("old mill", 0.8); got == nil || got.Name != "Old Mill" {
		t.Fatalf("Find after CSV load: got %+v", got)
	}
}

func TestLoadRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`["Pikachu"]`))
	}))
	defer server.Close()

	x := New("bosses")
	if err := x.Load(context.Background(), server.URL); err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if got := x.Find("pikachu", 0.8); got == nil {
		t.Fatal("Find after remote load returned nil")
	}
}

func TestLoadBadFormatLeavesIndexUnloaded(t *testing.T) {
	x := New("bosses")
	// Neither JSON nor CSV: the bare quote inside an unquoted CSV
	// field fails the CSV parser too.
	src := writeSource(t, "bosses.bin", "{\"not\": an array\nab\"cd")

	if err := x.Load(context.Background(), src); err == nil {
		t.Fatal("expected load error for binary payload")
	}
	if x.Loaded() {
		t.Fatal("index marked loaded after failed load")
	}
	if got := x.Find("pikachu", 0); got != nil {
		t.Fatalf("unloaded index answered: %+v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	x := New("bosses")
	if err := x.Load(context.Background(), "/does/not/exist.json"); err == nil {
		t.Fatal("expected load error for missing file")
	}
}

func TestFindThreshold(t *testing.T) {
	x := New("bosses")
	src := writeSource(t, "bosses.json", `["Pikachu"]`)
	if err := x.Load(context.Background(), src); err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if got := x.Find("pikachu", 0.8); got == nil || got.Name != "Pikachu" {
		t.Fatalf("exact-ignoring-case query: got %+v", got)
	}
	if got := x.Find("zzzzz", 0.8); got != nil {
		t.Fatalf("nonsense query matched: %+v", got)
	}
}

func TestFindZeroThresholdAcceptsZeroScore(t *testing.T) {
	x := New("bosses")
	src := writeSource(t, "bosses.json", `["abc", "xyz"]`)
	if err := x.Load(context.Background(), src); err != nil {
		t.Fatalf("Load err: %v", err)
	}

	// "123" scores 0 against every candidate. A threshold of 0 still
	// accepts the maximum, keeping the first-loaded entity.
	if got := x.Find("123", 0); got == nil || got.Name != "abc" {
		t.Fatalf("zero threshold: got %+v want abc", got)
	}
}

func TestFindTieBreakKeepsLoadOrder(t *testing.T) {
	x := New("bosses")
	// Both candidates score identically against "abx".
	src := writeSource(t, "bosses.json", `["abc", "abd"]`)
	if err := x.Load(context.Background(), src); err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if got := x.Find("abx", 0.5); got == nil || got.Name != "abc" {
		t.Fatalf("tie-break: got %+v want first-loaded abc", got)
	}
}

func TestMatchRatio(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"abc", "abc", 1},
		{"abc", "xyz", 0},
		{"abcd", "bcde", 0.75},
	}
	for _, tc := range cases {
		if got := matchRatio(tc.a, tc.b); got != tc.want {
			t.Fatalf("matchRatio(%q,%q): got %v want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
