// Package recognition declares the contract of the screenshot
// recognition pipeline. The pipeline itself lives outside this
// service; the bot only consumes its verdicts.
package recognition

import (
	"context"
	"errors"

	"raidboard/internal/model"
)

// ErrNotRaid is returned when the image is not a raid screenshot. It
// is a verdict, not a failure: the caller drops the image silently.
var ErrNotRaid = errors.New("image is not a raid screenshot")

// Recognizer turns raw image bytes into a freshly minted raid record
// with code, boss, gym and inferred time already populated, or
// ErrNotRaid.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (*model.Raid, error)
}
