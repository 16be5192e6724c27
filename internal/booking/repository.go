package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shareit-go/shareit-server/internal/item"
)

// Repository defines methods for accessing booking data from storage. It
// also satisfies item.BookingLookup so the item module can show booking
// snapshots without depending on this package.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error

	// ListByBooker and ListByOwner return bookings scoped to the booker or
	// to the owner of the booked items, filtered by state against now,
	// ordered by start descending.
	ListByBooker(ctx context.Context, bookerID int64, state State, now time.Time, limit, offset uint64) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state State, now time.Time, limit, offset uint64) ([]*Booking, error)

	item.BookingLookup
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("bookings").
		Columns("start_date", "end_date", "item_id", "booker_id", "status").
		Values(b.Start, b.End, b.ItemID, b.BookerID, b.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.
		Select("b.id", "b.start_date", "b.end_date", "b.item_id", "b.booker_id", "b.status", "i.name", "i.owner_id").
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status, &b.ItemName, &b.ItemOwnerID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID int64, state State, now time.Time, limit, offset uint64) ([]*Booking, error) {
	return r.list(ctx, squirrel.Eq{"b.booker_id": bookerID}, state, now, limit, offset)
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, state State, now time.Time, limit, offset uint64) ([]*Booking, error) {
	return r.list(ctx, squirrel.Eq{"i.owner_id": ownerID}, state, now, limit, offset)
}

func (r *pgxRepository) list(ctx context.Context, scope squirrel.Sqlizer, state State, now time.Time, limit, offset uint64) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.
		Select("b.id", "b.start_date", "b.end_date", "b.item_id", "b.booker_id", "b.status", "i.name", "i.owner_id").
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Where(scope)

	// CURRENT, FUTURE and PAST look only at the time window; a WAITING
	// booking whose window contains now still counts as CURRENT.
	switch state {
	case StateAll:
		// no filter
	case StateCurrent:
		query = query.Where(squirrel.LtOrEq{"b.start_date": now}).
			Where(squirrel.GtOrEq{"b.end_date": now})
	case StateFuture:
		query = query.Where(squirrel.Gt{"b.start_date": now})
	case StatePast:
		query = query.Where(squirrel.Lt{"b.end_date": now})
	case StateWaiting:
		query = query.Where(squirrel.Eq{"b.status": StatusWaiting})
	case StateRejected:
		query = query.Where(squirrel.Eq{"b.status": StatusRejected})
	}

	sql, args, err := query.
		OrderBy("b.start_date DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status, &b.ItemName, &b.ItemOwnerID,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) LastCompleted(ctx context.Context, itemID int64, now time.Time) (*item.BookingSnapshot, error) {
	return r.snapshot(ctx, itemID, squirrel.Lt{"end_date": now}, "end_date DESC")
}

func (r *pgxRepository) NextUpcoming(ctx context.Context, itemID int64, now time.Time) (*item.BookingSnapshot, error) {
	return r.snapshot(ctx, itemID, squirrel.Gt{"end_date": now}, "end_date ASC")
}

func (r *pgxRepository) snapshot(ctx context.Context, itemID int64, window squirrel.Sqlizer, order string) (*item.BookingSnapshot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "booker_id").
		From("bookings").
		Where(squirrel.Eq{"item_id": itemID, "status": StatusApproved}).
		Where(window).
		OrderBy(order).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking snapshot query failed: %w", err)
	}

	var snap item.BookingSnapshot
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&snap.ID, &snap.BookerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking snapshot failed: %w", err)
	}
	return &snap, nil
}

func (r *pgxRepository) HasFinishedRental(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("bookings").
		Where(squirrel.Eq{"booker_id": bookerID, "item_id": itemID, "status": StatusApproved}).
		Where(squirrel.Lt{"end_date": now})

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build finished rental query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check finished rental failed: %w", err)
	}
	return exists, nil
}
