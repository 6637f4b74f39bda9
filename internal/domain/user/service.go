package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	publicIDLength      = 8
	credentialsAttempts = 5
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cache: noopCache{}}
}

// NewCachedService memoizes Authenticate lookups for ttl.
func NewCachedService(repo Repository, cache Cache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		return NewService(repo)
	}
	return &Service{repo: repo, cache: cache, cacheTTL: ttl}
}

// CreateUser registers a user with a server generated public id and token.
// A blank name is stored as NULL.
func (s *Service) CreateUser(ctx context.Context, name string) (*User, error) {
	user := User{}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		user.Name = &trimmed
	}

	for i := 0; i < credentialsAttempts; i++ {
		publicID, token := newCredentials()
		taken, err := s.repo.IsCredentialTaken(ctx, publicID, token)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		user.PublicID = publicID
		user.Token = token
		err = s.repo.CreateUser(ctx, &user)
		if errors.Is(err, ErrCredentialsTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &user, nil
	}

	return nil, ErrCredentialsGeneration
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// Authenticate resolves a caller token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	if cached, ok := s.cache.GetByToken(token); ok {
		return cached, nil
	}

	user, err := s.repo.GetUserByToken(ctx, token)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	s.cache.SetByToken(token, user, s.cacheTTL)
	return user, nil
}

func (s *Service) GetUserByToken(ctx context.Context, token string) (*User, error) {
	return s.repo.GetUserByToken(ctx, strings.TrimSpace(token))
}

func (s *Service) GetUsersByIDs(ctx context.Context, ids []int64) ([]User, error) {
	if len(ids) == 0 {
		return []User{}, nil
	}
	return s.repo.GetUsersByIDs(ctx, ids)
}

func newCredentials() (string, string) {
	publicID := strings.ReplaceAll(uuid.NewString(), "-", "")[:publicIDLength]
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return publicID, token
}
