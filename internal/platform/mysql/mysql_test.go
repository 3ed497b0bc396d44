package mysql

import (
	"testing"

	"raidboard/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.MySQLConfig{
		Host:     "db.local",
		Port:     3307,
		User:     "audit",
		Password: "s3cret",
		DB:       "raidboard",
		Params:   "parseTime=true",
	}

	got := DSN(cfg)
	want := "audit:s3cret@tcp(db.local:3307)/raidboard?parseTime=true"
	if got != want {
		t.Fatalf("DSN: got %q want %q", got, want)
	}
}
