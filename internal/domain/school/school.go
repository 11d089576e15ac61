// Package school holds the school entity: the site a report inspects.
package school

import (
	"context"
	"fmt"
	"time"
)

type School struct {
	id        uint
	name      string
	region    string
	address   string
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewSchool(name, region, address string, now time.Time) (*School, error) {
	if name == "" {
		return nil, fmt.Errorf("school name is required")
	}

	return &School{
		name:      name,
		region:    region,
		address:   address,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructSchool(id uint, name, region, address string, active bool, createdAt, updatedAt time.Time) (*School, error) {
	if id == 0 {
		return nil, fmt.Errorf("school ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("school name is required")
	}

	return &School{
		id:        id,
		name:      name,
		region:    region,
		address:   address,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (s *School) ID() uint {
	return s.id
}

func (s *School) Name() string {
	return s.name
}

func (s *School) Region() string {
	return s.region
}

func (s *School) Address() string {
	return s.address
}

func (s *School) IsActive() bool {
	return s.active
}

func (s *School) CreatedAt() time.Time {
	return s.createdAt
}

func (s *School) UpdatedAt() time.Time {
	return s.updatedAt
}

func (s *School) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("school ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("school ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *School) UpdateDetails(name, region, address string, now time.Time) error {
	if name == "" {
		return fmt.Errorf("school name is required")
	}
	s.name = name
	s.region = region
	s.address = address
	s.updatedAt = now
	return nil
}

func (s *School) Deactivate(now time.Time) {
	s.active = false
	s.updatedAt = now
}

func (s *School) Activate(now time.Time) {
	s.active = true
	s.updatedAt = now
}

type Repository interface {
	Save(ctx context.Context, school *School) error
	Update(ctx context.Context, school *School) error
	Delete(ctx context.Context, schoolID uint) error
	GetByID(ctx context.Context, schoolID uint) (*School, error)
	List(ctx context.Context, filter Filter) ([]*School, int64, error)
}

type Filter struct {
	Region   *string
	Active   *bool
	Search   string
	Page     int
	PageSize int
}
