package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

// UserStore is an in-memory UserRepository
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*entities.User
}

// NewUserStore creates an empty in-memory user store
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]*entities.User),
	}
}

// Create creates a new user
func (s *UserStore) Create(ctx context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return apperrors.NewConflictError(fmt.Sprintf("user %s already exists", user.ID))
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.NewConflictError(fmt.Sprintf("email %s already registered", user.Email))
		}
	}
	c := copyUser(user)
	s.users[user.ID] = c
	return nil
}

// GetByID retrieves a user by ID
func (s *UserStore) GetByID(ctx context.Context, id string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}
	return copyUser(u), nil
}

// GetByEmail retrieves a user by email
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
}

// Update updates a user
func (s *UserStore) Update(ctx context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", user.ID))
	}
	s.users[user.ID] = copyUser(user)
	return nil
}

// Delete removes a user
func (s *UserStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}
	delete(s.users, id)
	return nil
}

func copyUser(u *entities.User) *entities.User {
	c := *u
	if u.DJProfileID != nil {
		id := *u.DJProfileID
		c.DJProfileID = &id
	}
	return &c
}
