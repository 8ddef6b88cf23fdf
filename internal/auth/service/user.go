package service

import (
	"context"
	"errors"

	"github.com/vedakart/vedakart/internal/auth/domain"
	"github.com/vedakart/vedakart/internal/auth/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id, sanitized for external callers.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user.Sanitized(), nil
}
