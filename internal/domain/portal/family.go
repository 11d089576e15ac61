// Package portal holds the parent portal access model: families that
// authenticate with a PIN, and the short-lived sessions issued to them.
package portal

import (
	"context"
	"fmt"
	"time"
)

// Family is a portal account. The PIN is never stored; only its bcrypt
// hash is kept, and verification always runs the full comparison.
type Family struct {
	id        uint
	name      string
	pinHash   string
	active    bool
	createdAt time.Time
}

func NewFamily(name, pinHash string, now time.Time) (*Family, error) {
	if name == "" {
		return nil, fmt.Errorf("family name is required")
	}
	if pinHash == "" {
		return nil, fmt.Errorf("PIN hash is required")
	}

	return &Family{
		name:      name,
		pinHash:   pinHash,
		active:    true,
		createdAt: now,
	}, nil
}

func ReconstructFamily(id uint, name, pinHash string, active bool, createdAt time.Time) (*Family, error) {
	if id == 0 {
		return nil, fmt.Errorf("family ID cannot be zero")
	}

	return &Family{
		id:        id,
		name:      name,
		pinHash:   pinHash,
		active:    active,
		createdAt: createdAt,
	}, nil
}

func (f *Family) ID() uint {
	return f.id
}

func (f *Family) Name() string {
	return f.name
}

func (f *Family) PINHash() string {
	return f.pinHash
}

func (f *Family) IsActive() bool {
	return f.active
}

func (f *Family) CreatedAt() time.Time {
	return f.createdAt
}

func (f *Family) SetID(id uint) error {
	if f.id != 0 {
		return fmt.Errorf("family ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("family ID cannot be zero")
	}
	f.id = id
	return nil
}

// ResetPIN replaces the stored hash.
func (f *Family) ResetPIN(pinHash string) error {
	if pinHash == "" {
		return fmt.Errorf("PIN hash is required")
	}
	f.pinHash = pinHash
	return nil
}

func (f *Family) Deactivate() {
	f.active = false
}

type FamilyRepository interface {
	Save(ctx context.Context, family *Family) error
	Update(ctx context.Context, family *Family) error
	GetByID(ctx context.Context, familyID uint) (*Family, error)
	ListActive(ctx context.Context) ([]*Family, error)
}

// PINHasher abstracts the hash scheme so the domain never imports the
// crypto implementation. Compare must take the same time whether or not
// the hash matches.
type PINHasher interface {
	Hash(pin string) (string, error)
	Compare(pinHash, pin string) bool
}
