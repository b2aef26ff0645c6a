// services/stats.go
package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"cleanbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrClientNotFound is returned when a stats operation targets a client id
// that does not resolve to a record.
var ErrClientNotFound = errors.New("client not found")

// ClientStatsService maintains the denormalized aggregate fields on Client
// (total_spent, bookings_count, last_booking) as a projection of that
// client's bookings. Recalculate is the authoritative path; AddBooking is a
// best-effort cache update used right after a booking is persisted. Updates
// for the same client are serialized through a per-client lock so the two
// paths cannot interleave their read-modify-write cycles.
type ClientStatsService struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewClientStatsService(db *gorm.DB) *ClientStatsService {
	return &ClientStatsService{
		db:    db,
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *ClientStatsService) clientLock(clientID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[clientID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[clientID] = lock
	}
	return lock
}

// AddBooking applies the incremental update after a new booking is
// persisted: spend and count increments plus a monotonic last-booking bump.
// It accepts the transaction handle of the booking insert so the cache
// update commits atomically with the booking itself.
func (s *ClientStatsService) AddBooking(tx *gorm.DB, clientID uuid.UUID, amount float64, bookingDate time.Time) error {
	lock := s.clientLock(clientID)
	lock.Lock()
	defer lock.Unlock()

	result := tx.Model(&models.Client{}).Where("id = ?", clientID).
		Updates(map[string]interface{}{
			"total_spent":    gorm.Expr("total_spent + ?", amount),
			"bookings_count": gorm.Expr("bookings_count + ?", 1),
			"last_booking": gorm.Expr(
				"CASE WHEN last_booking IS NULL OR last_booking < ? THEN ? ELSE last_booking END",
				bookingDate, bookingDate),
		})
	if result.Error != nil {
		return fmt.Errorf("update client stats: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

// Recalculate rebuilds the aggregates from the authoritative booking set:
// total_spent sums completed bookings only, bookings_count counts every
// status, last_booking is the latest booking date across all statuses. The
// three fields are written in a single statement so the update is
// all-or-nothing, and rerunning it never changes the result.
func (s *ClientStatsService) Recalculate(clientID uuid.UUID) error {
	lock := s.clientLock(clientID)
	lock.Lock()
	defer lock.Unlock()

	return s.recalculateLocked(clientID)
}

func (s *ClientStatsService) recalculateLocked(clientID uuid.UUID) error {
	result := s.db.Exec(`
		UPDATE clients SET
			total_spent = COALESCE((
				SELECT SUM(total_price) FROM bookings
				WHERE bookings.client_id = clients.id AND bookings.status = ?
			), 0),
			bookings_count = (
				SELECT COUNT(*) FROM bookings
				WHERE bookings.client_id = clients.id
			),
			last_booking = (
				SELECT MAX(booking_date) FROM bookings
				WHERE bookings.client_id = clients.id
			)
		WHERE clients.id = ?`,
		models.BookingStatusCompleted, clientID)

	if result.Error != nil {
		return fmt.Errorf("recalculate client stats: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

// RecalculateAll rebuilds the aggregates for every client. Used by the
// nightly reconciliation job and the admin repair action; a failure on one
// client does not stop the remaining ones.
func (s *ClientStatsService) RecalculateAll() (int, error) {
	var ids []uuid.UUID
	if err := s.db.Model(&models.Client{}).Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("list clients: %w", err)
	}

	var firstErr error
	updated := 0
	for _, id := range ids {
		if err := s.Recalculate(id); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("client %s: %w", id, err)
			}
			continue
		}
		updated++
	}
	return updated, firstErr
}
