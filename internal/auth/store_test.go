package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/commerce-service/internal/domain"
)

var errDatabaseDown = errors.New("database down")

// stubUserStore is an in-memory repository.UserRepository for middleware and
// predicate tests.
type stubUserStore struct {
	users  map[int64]*domain.User
	nextID int64
	failed error
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: map[int64]*domain.User{}, nextID: 1}
}

func (s *stubUserStore) add(user domain.User) *domain.User {
	if user.ID == 0 {
		user.ID = s.nextID
		s.nextID++
	}
	s.users[user.ID] = &user
	return &user
}

func (s *stubUserStore) Create(_ context.Context, user *domain.User) error {
	if s.failed != nil {
		return s.failed
	}
	created := s.add(*user)
	user.ID = created.ID
	return nil
}

func (s *stubUserStore) Update(_ context.Context, user *domain.User) error {
	if s.failed != nil {
		return s.failed
	}
	if _, ok := s.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *stubUserStore) Delete(_ context.Context, id int64) error {
	if s.failed != nil {
		return s.failed
	}
	if _, ok := s.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.users, id)
	return nil
}

func (s *stubUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if s.failed != nil {
		return nil, s.failed
	}
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (s *stubUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if s.failed != nil {
		return nil, s.failed
	}
	for _, user := range s.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if s.failed != nil {
		return nil, s.failed
	}
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if s.failed != nil {
		return false, s.failed
	}
	_, err := s.GetByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *stubUserStore) Count(_ context.Context) (int64, error) {
	if s.failed != nil {
		return 0, s.failed
	}
	return int64(len(s.users)), nil
}

func (s *stubUserStore) List(_ context.Context) ([]domain.User, error) {
	if s.failed != nil {
		return nil, s.failed
	}
	out := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, *user)
	}
	return out, nil
}
