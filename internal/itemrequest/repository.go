package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing item request data from storage.
type Repository interface {
	Create(ctx context.Context, r *ItemRequest) error
	GetByID(ctx context.Context, id int64) (*ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*ItemRequest, error)
	ListOthers(ctx context.Context, requesterID int64, limit, offset uint64) ([]*ItemRequest, error)

	// ListReplies returns the items posted in reply to the given request.
	ListReplies(ctx context.Context, requestID int64) ([]Reply, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("item_requests").
		Columns("description", "requester_id", "created").
		Values(req.Description, req.RequesterID, req.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item request query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&req.ID); err != nil {
		return fmt.Errorf("create item request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "description", "requester_id", "created").
		From("item_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item request query failed: %w", err)
	}

	var req ItemRequest
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) ListByRequester(ctx context.Context, requesterID int64) ([]*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "description", "requester_id", "created").
		From("item_requests").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("created DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list item requests query failed: %w", err)
	}
	return r.queryRequests(ctx, query, args)
}

func (r *pgxRepository) ListOthers(ctx context.Context, requesterID int64, limit, offset uint64) ([]*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "description", "requester_id", "created").
		From("item_requests").
		Where(squirrel.NotEq{"requester_id": requesterID}).
		OrderBy("created DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list other item requests query failed: %w", err)
	}
	return r.queryRequests(ctx, query, args)
}

func (r *pgxRepository) ListReplies(ctx context.Context, requestID int64) ([]Reply, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("items").
		Where(squirrel.Eq{"request_id": requestID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list replies query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list replies failed: %w", err)
	}
	defer rows.Close()

	var replies []Reply
	for rows.Next() {
		var rep Reply
		if err := rows.Scan(&rep.ID, &rep.Name, &rep.Description, &rep.Available, &rep.OwnerID, &rep.RequestID); err != nil {
			return nil, fmt.Errorf("scan reply failed: %w", err)
		}
		replies = append(replies, rep)
	}
	return replies, rows.Err()
}

func (r *pgxRepository) queryRequests(ctx context.Context, query string, args []any) ([]*ItemRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list item requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*ItemRequest
	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
			return nil, fmt.Errorf("scan item request failed: %w", err)
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}
