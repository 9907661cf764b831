package repomanager

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/dmitrijs2005/foodorder/internal/dbx"
	"github.com/dmitrijs2005/foodorder/internal/server/models"
	"github.com/dmitrijs2005/foodorder/internal/server/repositories/menu"
	"github.com/dmitrijs2005/foodorder/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/foodorder/internal/server/repositories/users"
	"github.com/google/uuid"
)

// InMemoryRepositoryManager keeps everything in process memory. The DBTX
// argument is ignored, so writes made inside a transaction are not rolled
// back. It backs tests and local demos.
type InMemoryRepositoryManager struct {
	mu       sync.Mutex
	users    map[string]*models.User
	sessions map[string]*models.Session
	menu     []models.MenuItem
	nextID   int64
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:    make(map[string]*models.User),
		sessions: make(map[string]*models.Session),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository       { return memUsers{m} }
func (m *InMemoryRepositoryManager) Sessions(dbx.DBTX) sessions.Repository { return memSessions{m} }
func (m *InMemoryRepositoryManager) Menu(dbx.DBTX) menu.Repository         { return memMenu{m} }

// SeedMenu replaces the menu contents.
func (m *InMemoryRepositoryManager) SeedMenu(items ...models.MenuItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menu = append([]models.MenuItem(nil), items...)
}

// SessionCount returns the number of stored session rows for userID,
// expired ones included.
func (m *InMemoryRepositoryManager) SessionCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n
}

type memUsers struct{ m *InMemoryRepositoryManager }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, existing := range r.m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}

	now := time.Now()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	stored := *u
	r.m.users[u.ID] = &stored
	return u, nil
}

func (r memUsers) GetActiveByLogin(_ context.Context, username, role string) (*models.User, error) {
	return r.find(func(u *models.User) bool {
		return u.Username == username && u.Role == role && u.IsActive
	})
}

func (r memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r memUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	u, ok := r.m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

func (r memUsers) find(match func(*models.User) bool) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, u := range r.m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memSessions struct{ m *InMemoryRepositoryManager }

func (r memSessions) Create(_ context.Context, token, userID string, expiresAt time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.sessions[token]; ok {
		return common.ErrorAlreadyExists
	}
	r.m.nextID++
	r.m.sessions[token] = &models.Session{
		ID: r.m.nextID, Token: token, UserID: userID, ExpiresAt: expiresAt, CreatedAt: time.Now(),
	}
	return nil
}

func (r memSessions) FindValid(_ context.Context, token string, now time.Time) (*models.Session, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	s, ok := r.m.sessions[token]
	if !ok || !s.ExpiresAt.After(now) {
		return nil, common.ErrorNotFound
	}
	cp := *s
	return &cp, nil
}

func (r memSessions) DeleteByToken(_ context.Context, token string) (int64, error) {
	return r.deleteWhere(func(s *models.Session) bool { return s.Token == token }), nil
}

func (r memSessions) DeleteByUserID(_ context.Context, userID string) (int64, error) {
	return r.deleteWhere(func(s *models.Session) bool { return s.UserID == userID }), nil
}

func (r memSessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	return r.deleteWhere(func(s *models.Session) bool { return !s.ExpiresAt.After(now) }), nil
}

func (r memSessions) deleteWhere(match func(*models.Session) bool) int64 {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	var n int64
	for tok, s := range r.m.sessions {
		if match(s) {
			delete(r.m.sessions, tok)
			n++
		}
	}
	return n
}

type memMenu struct{ m *InMemoryRepositoryManager }

func (r memMenu) ListAvailable(_ context.Context, category string) ([]models.MenuItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	out := make([]models.MenuItem, 0, len(r.m.menu))
	for _, it := range r.m.menu {
		if it.Available && (category == "" || it.Category == category) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
