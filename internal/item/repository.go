package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing item and comment data from storage.
type Repository interface {
	Create(ctx context.Context, i *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset uint64) ([]*Item, error)
	Update(ctx context.Context, i *Item) error
	Delete(ctx context.Context, id int64) error

	// Search returns available items whose name or description contains the
	// text, case-insensitively.
	Search(ctx context.Context, text string, limit, offset uint64) ([]*Item, error)

	CreateComment(ctx context.Context, c *Comment) error
	ListComments(ctx context.Context, itemID int64) ([]Comment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, i *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("items").
		Columns("owner_id", "name", "description", "available", "request_id").
		Values(i.OwnerID, i.Name, i.Description, i.Available, i.RequestID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&i.ID); err != nil {
		return fmt.Errorf("create item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "owner_id", "name", "description", "available", "request_id").
		From("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query failed: %w", err)
	}

	var i Item
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&i.ID, &i.OwnerID, &i.Name, &i.Description, &i.Available, &i.RequestID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return &i, nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset uint64) ([]*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "owner_id", "name", "description", "available", "request_id").
		From("items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items query failed: %w", err)
	}
	return r.queryItems(ctx, query, args)
}

func (r *pgxRepository) Update(ctx context.Context, i *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("items").
		Set("name", i.Name).
		Set("description", i.Description).
		Set("available", i.Available).
		Where(squirrel.Eq{"id": i.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Search(ctx context.Context, text string, limit, offset uint64) ([]*Item, error) {
	pattern := "%" + text + "%"

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "owner_id", "name", "description", "available", "request_id").
		From("items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("id ASC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search items query failed: %w", err)
	}
	return r.queryItems(ctx, query, args)
}

func (r *pgxRepository) CreateComment(ctx context.Context, c *Comment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("comments").
		Columns("text", "item_id", "author_id", "created").
		Values(c.Text, c.ItemID, c.AuthorID, c.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create comment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID); err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListComments(ctx context.Context, itemID int64) ([]Comment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("c.id", "c.text", "c.item_id", "c.author_id", "u.name", "c.created").
		From("comments c").
		Join("users u ON c.author_id = u.id").
		Where(squirrel.Eq{"c.item_id": itemID}).
		OrderBy("c.created ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *pgxRepository) queryItems(ctx context.Context, query string, args []any) ([]*Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var i Item
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Description, &i.Available, &i.RequestID); err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}
