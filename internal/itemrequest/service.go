package itemrequest

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shareit-go/shareit-server/internal/pkg/pagequery"
	"github.com/shareit-go/shareit-server/internal/user"
)

// Detail is an item request together with the items posted in reply.
type Detail struct {
	ItemRequest
	Replies []Reply
}

// Service defines business logic related to item requests.
type Service interface {
	Add(ctx context.Context, requesterID int64, description string) (*ItemRequest, error)
	ListOwn(ctx context.Context, requesterID int64) ([]*Detail, error)
	ListOthers(ctx context.Context, requesterID int64, from, size int) ([]*Detail, error)
	GetByID(ctx context.Context, requestID, actingUserID int64) (*Detail, error)

	// GetItemRequestOrNotFound resolves a request by ID, failing with ErrNotFound if absent.
	GetItemRequestOrNotFound(ctx context.Context, id int64) (*ItemRequest, error)
}

type service struct {
	repo  Repository
	users user.Service
	log   zerolog.Logger
	now   func() time.Time
}

// NewService creates a new item request Service.
func NewService(repo Repository, users user.Service, log zerolog.Logger) Service {
	return &service{repo: repo, users: users, log: log, now: time.Now}
}

func (s *service) Add(ctx context.Context, requesterID int64, description string) (*ItemRequest, error) {
	if _, err := s.users.GetUserOrNotFound(ctx, requesterID); err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionMissing
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: requesterID,
		Created:     s.now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	s.log.Info().Int64("request_id", req.ID).Int64("requester_id", requesterID).Msg("item request created")

	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID int64) ([]*Detail, error) {
	if _, err := s.users.GetUserOrNotFound(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.withReplies(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, requesterID int64, from, size int) ([]*Detail, error) {
	if _, err := s.users.GetUserOrNotFound(ctx, requesterID); err != nil {
		return nil, err
	}

	limit, offset := pagequery.Window(from, size)
	requests, err := s.repo.ListOthers(ctx, requesterID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.withReplies(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, requestID, actingUserID int64) (*Detail, error) {
	if _, err := s.users.GetUserOrNotFound(ctx, actingUserID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	replies, err := s.repo.ListReplies(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &Detail{ItemRequest: *req, Replies: replies}, nil
}

func (s *service) GetItemRequestOrNotFound(ctx context.Context, id int64) (*ItemRequest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) withReplies(ctx context.Context, requests []*ItemRequest) ([]*Detail, error) {
	details := make([]*Detail, 0, len(requests))
	for _, req := range requests {
		replies, err := s.repo.ListReplies(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, &Detail{ItemRequest: *req, Replies: replies})
	}
	return details, nil
}
