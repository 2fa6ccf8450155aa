package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/baseapi/user-api/internal/core/domain"
	"github.com/baseapi/user-api/internal/core/token"
)

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
	// failWith, when set, makes every call return it.
	failWith error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, onlyActive bool) ([]domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if onlyActive && !u.Active {
			continue
		}
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) error {
	if r.failWith != nil {
		return r.failWith
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = active
	return nil
}

type stubRoleRepo struct {
	byName map[string]*domain.Role
}

func newStubRoleRepo(names ...string) *stubRoleRepo {
	r := &stubRoleRepo{byName: make(map[string]*domain.Role)}
	for i, name := range names {
		r.byName[name] = &domain.Role{
			ID:     "role-" + strconv.Itoa(i+1),
			Name:   name,
			Active: true,
		}
	}
	return r
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	role, ok := r.byName[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	for _, role := range r.byName {
		if role.ID == id {
			clone := *role
			return &clone, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	clone := *role
	r.byName[role.Name] = &clone
	return &clone, nil
}

type stubThrottle struct {
	failures map[string]int
	max      int
	checkErr error
	resets   []string
}

func newStubThrottle(max int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), max: max}
}

func (t *stubThrottle) TooManyFailures(_ context.Context, email string) (bool, error) {
	if t.checkErr != nil {
		return false, t.checkErr
	}
	return t.failures[email] >= t.max, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	t.resets = append(t.resets, email)
	delete(t.failures, email)
	return nil
}

type stubAuditRecorder struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *stubAuditRecorder) Record(event domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func (a *stubAuditRecorder) kinds() []domain.AuditKind {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditKind, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Kind)
	}
	return out
}

func claimsFor(userID, role string) *token.Claims {
	return &token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		Role:             role,
	}
}
