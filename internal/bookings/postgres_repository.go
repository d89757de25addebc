package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wolfman30/hotel-booking-assistant/internal/booking"
)

const defaultListLimit = 100

type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository stores guests and bookings in the relational database.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("bookings: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

func newPostgresRepositoryWithDB(db db) *PostgresRepository {
	if db == nil {
		panic("bookings: db required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts the guest and the booking in one transaction and fills in
// the generated identifiers.
func (r *PostgresRepository) Create(ctx context.Context, rec *Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	checkIn, err := time.Parse(booking.DateLayout, rec.CheckIn)
	if err != nil {
		return fmt.Errorf("bookings: parse check-in: %w", err)
	}
	checkOut, err := time.Parse(booking.DateLayout, rec.CheckOut)
	if err != nil {
		return fmt.Errorf("bookings: parse check-out: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("bookings: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	customerID := uuid.New()
	if _, err := tx.Exec(ctx, `
		INSERT INTO customers (customer_id, name, email, phone)
		VALUES ($1, $2, $3, $4)
	`, customerID, rec.Name, rec.Email, rec.Phone); err != nil {
		return fmt.Errorf("bookings: insert customer: %w", err)
	}

	bookingID := uuid.New()
	var createdAt time.Time
	if err := tx.QueryRow(ctx, `
		INSERT INTO bookings (id, customer_id, room_type, check_in, check_out, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, bookingID, customerID, rec.RoomType, checkIn, checkOut, rec.Status).Scan(&createdAt); err != nil {
		return fmt.Errorf("bookings: insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("bookings: commit: %w", err)
	}

	rec.ID = bookingID.String()
	rec.CustomerID = customerID.String()
	rec.CreatedAt = createdAt
	return nil
}

const selectBookingColumns = `
	SELECT b.id, b.customer_id, c.name, c.email, c.phone,
	       b.room_type, b.check_in, b.check_out, b.status, b.created_at
	FROM bookings b
	JOIN customers c ON c.customer_id = b.customer_id
`

// GetByID fetches one booking with its guest.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Record, error) {
	row := r.db.QueryRow(ctx, selectBookingColumns+` WHERE b.id = $1`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("bookings: select failed: %w", err)
	}
	return rec, nil
}

// List returns the newest bookings first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Record, error) {
	query := selectBookingColumns
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` WHERE b.status = $1`
	}
	args = append(args, filter.limit())
	query += fmt.Sprintf(` ORDER BY b.created_at DESC LIMIT $%d`, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("bookings: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("bookings: scan failed: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings: list failed: %w", err)
	}
	return out, nil
}

// Stats groups bookings by room type and status, then counts confirmed
// stays starting today or later.
func (r *PostgresRepository) Stats(ctx context.Context) (*Stats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT room_type, status, COUNT(*)
		FROM bookings
		GROUP BY room_type, status
	`)
	if err != nil {
		return nil, fmt.Errorf("bookings: stats failed: %w", err)
	}
	defer rows.Close()

	stats := newStats()
	for rows.Next() {
		var (
			roomType, status string
			count            int
		)
		if err := rows.Scan(&roomType, &status, &count); err != nil {
			return nil, fmt.Errorf("bookings: scan stats failed: %w", err)
		}
		stats.Total += count
		stats.ByStatus[status] += count
		stats.ByRoomType[roomType] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings: stats failed: %w", err)
	}

	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE status = $1 AND check_in >= CURRENT_DATE`,
		StatusConfirmed,
	).Scan(&stats.Upcoming); err != nil {
		return nil, fmt.Errorf("bookings: count upcoming failed: %w", err)
	}
	return stats, nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	var (
		rec                 Record
		checkIn, checkOut   time.Time
		bookingID, customer uuid.UUID
	)
	if err := row.Scan(
		&bookingID,
		&customer,
		&rec.Name,
		&rec.Email,
		&rec.Phone,
		&rec.RoomType,
		&checkIn,
		&checkOut,
		&rec.Status,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	rec.ID = bookingID.String()
	rec.CustomerID = customer.String()
	rec.CheckIn = checkIn.Format(booking.DateLayout)
	rec.CheckOut = checkOut.Format(booking.DateLayout)
	return &rec, nil
}
