// Package permission persists administrative capability grants through a
// casbin policy store backed by the application database.
package permission

import (
	"context"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

var _ capability.GrantStore = (*CasbinGrantStore)(nil)

// grantModel is the minimal policy model: one rule per (role, capability)
// pair, matched exactly.
const grantModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj
`

type CasbinGrantStore struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   logger.Interface
}

func NewCasbinGrantStore(db *gorm.DB, log logger.Interface) (*CasbinGrantStore, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := casbinmodel.NewModelFromString(grantModel)
	if err != nil {
		return nil, fmt.Errorf("failed to build casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &CasbinGrantStore{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (s *CasbinGrantStore) SaveGrant(ctx context.Context, role capability.Role, cap capability.Capability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.enforcer.AddPolicy(role.String(), cap.String()); err != nil {
		s.logger.Errorw("failed to add capability grant", "error", err, "role", role.String(), "capability", cap.String())
		return fmt.Errorf("failed to add grant: %w", err)
	}
	return s.enforcer.SavePolicy()
}

func (s *CasbinGrantStore) RemoveGrant(ctx context.Context, role capability.Role, cap capability.Capability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.enforcer.RemovePolicy(role.String(), cap.String()); err != nil {
		s.logger.Errorw("failed to remove capability grant", "error", err, "role", role.String(), "capability", cap.String())
		return fmt.Errorf("failed to remove grant: %w", err)
	}
	return s.enforcer.SavePolicy()
}

// LoadGrants returns all persisted grants keyed by role. Rows carrying
// unknown roles or capabilities are skipped rather than failing startup.
func (s *CasbinGrantStore) LoadGrants(ctx context.Context) (map[capability.Role][]capability.Capability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	policies, err := s.enforcer.GetPolicy()
	if err != nil {
		return nil, fmt.Errorf("failed to read grant policies: %w", err)
	}

	grants := make(map[capability.Role][]capability.Capability)
	for _, rule := range policies {
		if len(rule) < 2 {
			continue
		}
		role := capability.ParseRole(rule[0])
		cap := capability.Capability(rule[1])
		if !role.IsValid() || !cap.IsValid() {
			s.logger.Warnw("skipping unknown grant row", "role", rule[0], "capability", rule[1])
			continue
		}
		grants[role] = append(grants[role], cap)
	}
	return grants, nil
}
