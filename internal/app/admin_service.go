// Package app holds the services behind the operator HTTP surface.
package app

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"raidboard/internal/model"
	"raidboard/internal/pkg/jwtutil"
	"raidboard/internal/repository"
	"raidboard/internal/store"
)

var (
	ErrInvalidCredential = errors.New("invalid operator password")
	ErrLoginDisabled     = errors.New("operator login is not configured")
	ErrRaidNotFound      = errors.New("raid not found")
)

// AdminService backs the operator API: a single configured credential,
// raid inspection and room management.
type AdminService struct {
	passwordHash  string
	jwtSecret     string
	jwtExpiration time.Duration

	raids store.RaidStore
	rooms store.KeyedSet
	audit *repository.AuditRepository
}

func NewAdminService(
	passwordHash string,
	jwtSecret string,
	jwtExpiration time.Duration,
	raids store.RaidStore,
	rooms store.KeyedSet,
	audit *repository.AuditRepository,
) *AdminService {
	return &AdminService{
		passwordHash:  passwordHash,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		raids:         raids,
		rooms:         rooms,
		audit:         audit,
	}
}

// Login checks the operator password against the configured bcrypt
// hash and issues a token. An empty hash disables login entirely.
func (s *AdminService) Login(password string) (string, error) {
	if s.passwordHash == "" {
		return "", ErrLoginDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredential
	}
	return jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, "operator")
}

func (s *AdminService) InspectRaid(ctx context.Context, code string) (*model.Raid, error) {
	raid, err := s.raids.Get(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrRaidNotFound
	}
	return raid, err
}

func (s *AdminService) EnableRoom(ctx context.Context, roomID int64) error {
	return s.rooms.Add(ctx, roomID, "")
}

func (s *AdminService) DisableRoom(ctx context.Context, roomID int64) error {
	return s.rooms.Remove(ctx, roomID)
}

func (s *AdminService) RoomEnabled(ctx context.Context, roomID int64) (bool, error) {
	return s.rooms.Contains(ctx, roomID)
}

// RecentAudit lists the latest interaction records. Returns an empty
// slice when the audit pipeline is not configured.
func (s *AdminService) RecentAudit(limit int) ([]model.InteractionRecord, error) {
	if s.audit == nil {
		return []model.InteractionRecord{}, nil
	}
	return s.audit.ListRecent(limit)
}

// RaidAudit lists the interaction history of one raid.
func (s *AdminService) RaidAudit(code string, limit int) ([]model.InteractionRecord, error) {
	if s.audit == nil {
		return []model.InteractionRecord{}, nil
	}
	return s.audit.ListByRaidCode(code, limit)
}
