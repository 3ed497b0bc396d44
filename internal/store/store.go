// Package store holds the ephemeral raid records and the
// administrative allow-sets.
//
// The raid store exposes only Put and Get. There is no compare-and-swap:
// callers read, modify in memory and write the whole record back, and
// the last write wins. Two users pressing join at the same instant can
// therefore lose one of the edits. That window is accepted: raids are
// human-paced, and a locking or retry protocol costs more than an
// occasional lost concurrent edit.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"raidboard/internal/model"
)

var (
	// ErrNotFound is returned by Get for a code that was never
	// written or whose record has expired.
	ErrNotFound = errors.New("raid not found")

	// ErrSuperAdmin is returned when a removal targets the seeded
	// super admin.
	ErrSuperAdmin = errors.New("super admin cannot be removed")
)

// RaidStore persists raid records under their code with a fixed TTL.
// Put overwrites unconditionally and restarts the expiry countdown.
type RaidStore interface {
	Put(ctx context.Context, raid *model.Raid) error
	Get(ctx context.Context, code string) (*model.Raid, error)
}

// KeyedSet is a persistent set of user or room identifiers, each with
// an optional label.
type KeyedSet interface {
	Add(ctx context.Context, id int64, label string) error
	Remove(ctx context.Context, id int64) error
	Contains(ctx context.Context, id int64) (bool, error)
}

// encodeRaid serializes a raid for storage. The JSON shape of
// model.Raid is the wire contract; the embedded version field guards
// against decoding records written by an incompatible build.
func encodeRaid(raid *model.Raid) ([]byte, error) {
	raid.Version = model.RaidEncodingVersion
	payload, err := json.Marshal(raid)
	if err != nil {
		return nil, fmt.Errorf("marshal raid failed: %w", err)
	}
	return payload, nil
}

func decodeRaid(payload []byte) (*model.Raid, error) {
	var raid model.Raid
	if err := json.Unmarshal(payload, &raid); err != nil {
		return nil, fmt.Errorf("unmarshal raid failed: %w", err)
	}
	if raid.Version != model.RaidEncodingVersion {
		return nil, fmt.Errorf("unsupported raid encoding version %d", raid.Version)
	}
	return &raid, nil
}
