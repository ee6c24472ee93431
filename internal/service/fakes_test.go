package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todo-backend/internal/domain"
)

// In-memory repository fakes mirroring the store contracts, including
// gorm's sentinel errors, so the services can be tested without a database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByValidResetToken(_ context.Context, token string, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Save(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.UpdatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakeTodoRepo struct {
	mu    sync.Mutex
	todos map[string]*domain.Todo
	clock time.Time
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: make(map[string]*domain.Todo), clock: time.Now()}
}

func (r *fakeTodoRepo) Create(_ context.Context, todo *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	// Monotonic timestamps keep the creation order deterministic.
	r.clock = r.clock.Add(time.Millisecond)
	todo.CreatedAt = r.clock
	todo.UpdatedAt = r.clock
	cp := *todo
	r.todos[todo.ID] = &cp
	return nil
}

func (r *fakeTodoRepo) FindByOwner(_ context.Context, userID string, offset, limit int) ([]domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var owned []domain.Todo
	for _, t := range r.todos {
		if t.UserID == userID {
			owned = append(owned, *t)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	if offset >= len(owned) {
		return nil, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

func (r *fakeTodoRepo) CountByOwner(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.todos {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeTodoRepo) CountCompletedByOwner(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.todos {
		if t.UserID == userID && t.Completed {
			n++
		}
	}
	return n, nil
}

func (r *fakeTodoRepo) FindScoped(_ context.Context, id, userID string) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.todos[id]; ok && t.UserID == userID {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTodoRepo) Save(_ context.Context, todo *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[todo.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	todo.UpdatedAt = time.Now()
	cp := *todo
	r.todos[todo.ID] = &cp
	return nil
}

func (r *fakeTodoRepo) DeleteScoped(_ context.Context, id, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.todos[id]; ok && t.UserID == userID {
		delete(r.todos, id)
		return 1, nil
	}
	return 0, nil
}

// fakeMailer records sends and can be told to fail per mail kind.
type fakeMailer struct {
	mu sync.Mutex

	failWelcome bool
	failReset   bool
	failChanged bool

	welcomes    []string
	resetTokens map[string]string // recipient -> token
	changed     []string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{resetTokens: make(map[string]string)}
}

func (m *fakeMailer) SendWelcome(to, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWelcome {
		return errors.New("smtp unavailable")
	}
	m.welcomes = append(m.welcomes, to)
	return nil
}

func (m *fakeMailer) SendPasswordReset(to, resetToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReset {
		return errors.New("smtp unavailable")
	}
	m.resetTokens[to] = resetToken
	return nil
}

func (m *fakeMailer) SendPasswordChanged(to, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failChanged {
		return errors.New("smtp unavailable")
	}
	m.changed = append(m.changed, to)
	return nil
}
