package usecases

import (
	"context"

	"github.com/chroma-excellence/chromaqa/internal/domain/portal"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type mockFamilyRepository struct {
	SaveFunc       func(ctx context.Context, family *portal.Family) error
	UpdateFunc     func(ctx context.Context, family *portal.Family) error
	GetByIDFunc    func(ctx context.Context, familyID uint) (*portal.Family, error)
	ListActiveFunc func(ctx context.Context) ([]*portal.Family, error)
}

func (m *mockFamilyRepository) Save(ctx context.Context, family *portal.Family) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, family)
	}
	return nil
}

func (m *mockFamilyRepository) Update(ctx context.Context, family *portal.Family) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, family)
	}
	return nil
}

func (m *mockFamilyRepository) GetByID(ctx context.Context, familyID uint) (*portal.Family, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, familyID)
	}
	return nil, nil
}

func (m *mockFamilyRepository) ListActive(ctx context.Context) ([]*portal.Family, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

// memorySessionStore is a map-backed store for tests. Expiry is handled
// by the use cases under test, not the store.
type memorySessionStore struct {
	sessions map[string]*portal.Session
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]*portal.Session)}
}

func (s *memorySessionStore) Save(ctx context.Context, session *portal.Session) error {
	copied := *session
	s.sessions[session.Token] = &copied
	return nil
}

func (s *memorySessionStore) Get(ctx context.Context, token string) (*portal.Session, error) {
	session, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *memorySessionStore) Delete(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

// plainHasher matches when hash == "hashed:" + pin. Login tests don't
// need real bcrypt cost.
type plainHasher struct{}

func (plainHasher) Hash(pin string) (string, error) {
	return "hashed:" + pin, nil
}

func (plainHasher) Compare(pinHash, pin string) bool {
	return pinHash == "hashed:"+pin
}

type mockRateLimiter struct {
	AllowFunc func(ctx context.Context, key string) (bool, error)
	calls     []string
}

func (m *mockRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	m.calls = append(m.calls, key)
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, key)
	}
	return true, nil
}

type mockAdminVerifier struct {
	VerifyAdminFunc func(ctx context.Context, hostToken string) (bool, error)
}

func (m *mockAdminVerifier) VerifyAdmin(ctx context.Context, hostToken string) (bool, error) {
	if m.VerifyAdminFunc != nil {
		return m.VerifyAdminFunc(ctx, hostToken)
	}
	return false, nil
}

type nopLogger struct{}

func (n nopLogger) With(args ...any) logger.Interface             { return n }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
