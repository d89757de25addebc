package bookings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wolfman30/hotel-booking-assistant/internal/booking"
)

// Repository stores confirmed bookings.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, filter ListFilter) ([]*Record, error)
	Stats(ctx context.Context) (*Stats, error)
}

// ListFilter narrows a listing. A zero Limit means defaultListLimit and an
// empty Status matches every booking.
type ListFilter struct {
	Status string
	Limit  int
}

func (f ListFilter) limit() int {
	if f.Limit <= 0 {
		return defaultListLimit
	}
	return f.Limit
}

// Stats summarises stored bookings. Upcoming counts confirmed stays that
// have not started yet.
type Stats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByRoomType map[string]int `json:"by_room_type"`
	Upcoming   int            `json:"upcoming"`
}

func newStats() *Stats {
	return &Stats{ByStatus: map[string]int{}, ByRoomType: map[string]int{}}
}

// InMemoryRepository keeps bookings in process; used when no database is
// configured.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Record
	now     func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[string]*Record),
		now:     time.Now,
	}
}

func (r *InMemoryRepository) Create(_ context.Context, rec *Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = uuid.New().String()
	rec.CustomerID = uuid.New().String()
	rec.CreatedAt = r.now().UTC()
	copied := *rec
	r.records[rec.ID] = &copied
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *rec
	return &copied, nil
}

// List returns the newest bookings first.
func (r *InMemoryRepository) List(_ context.Context, filter ListFilter) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Record, 0, len(r.records))
	for _, rec := range r.records {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit := filter.limit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Stats(_ context.Context) (*Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	today := r.now().UTC().Format(booking.DateLayout)
	stats := newStats()
	for _, rec := range r.records {
		stats.Total++
		stats.ByStatus[rec.Status]++
		stats.ByRoomType[rec.RoomType]++
		// ISO dates compare lexically.
		if rec.Status == StatusConfirmed && rec.CheckIn >= today {
			stats.Upcoming++
		}
	}
	return stats, nil
}
