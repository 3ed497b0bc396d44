package store

import "context"

// AdminSet is the bot-admin allow-set with one seeded super admin the
// set refuses to remove.
type AdminSet struct {
	set        KeyedSet
	superAdmin int64
}

// NewAdminSet wraps a keyed set and seeds the super admin. A zero
// superAdmin means no seed.
func NewAdminSet(ctx context.Context, set KeyedSet, superAdmin int64) (*AdminSet, error) {
	s := &AdminSet{set: set, superAdmin: superAdmin}
	if superAdmin != 0 {
		if err := set.Add(ctx, superAdmin, "superadmin"); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *AdminSet) Add(ctx context.Context, id int64, label string) error {
	return s.set.Add(ctx, id, label)
}

func (s *AdminSet) Remove(ctx context.Context, id int64) error {
	if id == s.superAdmin && s.superAdmin != 0 {
		return ErrSuperAdmin
	}
	return s.set.Remove(ctx, id)
}

func (s *AdminSet) Contains(ctx context.Context, id int64) (bool, error) {
	return s.set.Contains(ctx, id)
}

// IsSuperAdmin reports whether id is the seeded super admin.
func (s *AdminSet) IsSuperAdmin(id int64) bool {
	return s.superAdmin != 0 && id == s.superAdmin
}
