package user

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// CreateRequest carries the fields for a new user.
type CreateRequest struct {
	Name  string
	Email string
}

// UpdateRequest carries a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Name  *string
	Email *string
}

// Service defines business logic related to users.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*User, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id int64) error

	// GetUserOrNotFound resolves a user by ID, failing with ErrNotFound if absent.
	GetUserOrNotFound(ctx context.Context, id int64) (*User, error)
}

type service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService creates a new user Service.
func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, ErrEmailMissing
	}

	u := &User{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", u.ID).Str("email", u.Email).Msg("user created")

	return u, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*User, error) {
	u, err := s.GetUserOrNotFound(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return nil, ErrEmailMissing
		}
		u.Email = email
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", u.ID).Msg("user updated")

	return u, nil
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetUserOrNotFound(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *service) GetUserOrNotFound(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
