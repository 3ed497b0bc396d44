// Package index provides fuzzy canonical-name lookup for bosses and
// gyms, loaded once at startup from a local file or an HTTP(S) URL.
package index

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"raidboard/internal/model"
)

// DefaultMinConfidence is the accept threshold for generic lookups.
// Subject resolution uses a stricter 0.8 at its call site.
const DefaultMinConfidence = 0.4

var errUnknownFormat = errors.New("source is neither valid JSON nor CSV")

// Index is a fuzzy-matching list of canonical entities. A zero Index
// is usable: until Load succeeds every Find answers nil.
type Index struct {
	name string

	mu       sync.RWMutex
	loaded   bool
	entities []model.Entity
}

// New creates an empty index. The name only shows up in logs.
func New(name string) *Index {
	return &Index{name: name}
}

// Loaded reports whether a Load has succeeded.
func (x *Index) Loaded() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.loaded
}

// Load reads the source and replaces the index contents. The source
// is fetched over HTTP(S) when it parses as a URL with a scheme, read
// from disk otherwise. The payload format is detected by attempting
// JSON first, then CSV. On any failure the index keeps its previous
// state.
func (x *Index) Load(ctx context.Context, source string) error {
	raw, err := x.fetch(ctx, source)
	if err != nil {
		return fmt.Errorf("load %s index failed: %w", x.name, err)
	}

	entities, err := parseEntities(raw)
	if err != nil {
		return fmt.Errorf("load %s index failed: %w", x.name, err)
	}

	x.mu.Lock()
	x.entities = entities
	x.loaded = true
	x.mu.Unlock()

	log.Printf("%s index loaded with %d entities", x.name, len(entities))
	return nil
}

// Find returns the entity whose canonical name is most similar to
// query, or nil when the best score falls below minConfidence or the
// index never loaded. Scores are case-insensitive normalized ratios in
// [0,1]; ties keep the candidate that was loaded first.
func (x *Index) Find(query string, minConfidence float64) *model.Entity {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if !x.loaded || len(x.entities) == 0 {
		return nil
	}

	needle := strings.ToLower(strings.TrimSpace(query))

	best := 0
	bestScore := matchRatio(needle, strings.ToLower(x.entities[0].Name))
	for i, e := range x.entities[1:] {
		score := matchRatio(needle, strings.ToLower(e.Name))
		if score > bestScore {
			best, bestScore = i+1, score
		}
	}

	if bestScore < minConfidence {
		return nil
	}
	found := x.entities[best]
	return &found
}

func (x *Index) fetch(ctx context.Context, source string) ([]byte, error) {
	if u, err := url.Parse(source); err == nil && u.Scheme != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch remote source failed: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch remote source failed: status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(source)
}

// parseEntities accepts two encodings: a JSON array (of names or of
// objects with a "name" field) and CSV with the name in the first
// column.
func parseEntities(raw []byte) ([]model.Entity, error) {
	if entities, err := parseJSON(raw); err == nil {
		return entities, nil
	}
	if entities, err := parseCSV(raw); err == nil {
		return entities, nil
	}
	return nil, errUnknownFormat
}

func parseJSON(raw []byte) ([]model.Entity, error) {
	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		return entitiesFromNames(names)
	}

	var objects []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil, err
	}
	names = names[:0]
	for _, o := range objects {
		names = append(names, o.Name)
	}
	return entitiesFromNames(names)
}

func parseCSV(raw []byte) ([]model.Entity, error) {
	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, rec := range records {
		if len(rec) > 0 {
			names = append(names, rec[0])
		}
	}
	return entitiesFromNames(names)
}

func entitiesFromNames(names []string) ([]model.Entity, error) {
	var entities []model.Entity
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		entities = append(entities, model.Entity{Name: name})
	}
	if len(entities) == 0 {
		return nil, errors.New("source contains no entities")
	}
	return entities, nil
}
