// services/bulk.go
package services

import (
	"errors"
	"fmt"

	"cleanbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrInvalidAction rejects a batch whose action is not on the allow-list,
	// before any item is touched.
	ErrInvalidAction = errors.New("unrecognized bulk action")
	// ErrInvalidRequest rejects a batch with no booking ids selected.
	ErrInvalidRequest = errors.New("no bookings selected")
)

// Bulk actions an administrator can apply to a selection of bookings.
const (
	ActionConfirm  = "confirm"
	ActionComplete = "complete"
	ActionCancel   = "cancel"
	ActionDelete   = "delete"
)

// actionStatus maps a status-changing action to the target status. Delete is
// handled separately since it removes the booking.
var actionStatus = map[string]string{
	ActionConfirm:  models.BookingStatusConfirmed,
	ActionComplete: models.BookingStatusCompleted,
	ActionCancel:   models.BookingStatusCanceled,
}

// BookingActionError is a per-item failure inside a batch.
type BookingActionError struct {
	BookingID uuid.UUID `json:"bookingId"`
	Message   string    `json:"message"`
}

func (e BookingActionError) Error() string {
	return fmt.Sprintf("booking %s: %s", e.BookingID, e.Message)
}

// BulkResult aggregates a batch outcome. ErrorCount > 0 with a non-zero
// SuccessCount is a partial failure, not a full one.
type BulkResult struct {
	SuccessCount int                  `json:"successCount"`
	ErrorCount   int                  `json:"errorCount"`
	Errors       []BookingActionError `json:"errors"`
}

// AuthorizeFunc decides whether the acting user may modify one specific
// booking. The transport layer supplies it; a non-nil error is recorded as
// that item's failure.
type AuthorizeFunc func(booking models.Booking) error

// BulkActionService applies one admin action across a set of bookings,
// isolating per-item failures so one bad item never aborts its siblings.
type BulkActionService struct {
	db    *gorm.DB
	stats *ClientStatsService
}

func NewBulkActionService(db *gorm.DB, stats *ClientStatsService) *BulkActionService {
	return &BulkActionService{db: db, stats: stats}
}

// Apply runs the action over the booking ids sequentially. Request-level
// validation failures (bad action, empty selection) reject the whole batch
// before any mutation; everything after that is per-item. Any transition
// into or out of "completed" (including deleting a completed booking)
// triggers a full stats recomputation for the affected client.
//
// Status changes are applied unconditionally: the booking workflow does not
// forbid regressions such as completed back to pending.
func (s *BulkActionService) Apply(action string, bookingIDs []uuid.UUID, authorize AuthorizeFunc) (*BulkResult, error) {
	if _, ok := actionStatus[action]; !ok && action != ActionDelete {
		return nil, ErrInvalidAction
	}
	if len(bookingIDs) == 0 {
		return nil, ErrInvalidRequest
	}

	result := &BulkResult{}
	for _, id := range bookingIDs {
		if err := s.applyOne(action, id, authorize); err != nil {
			var itemErr BookingActionError
			if !errors.As(err, &itemErr) {
				itemErr = BookingActionError{BookingID: id, Message: err.Error()}
			}
			result.Errors = append(result.Errors, itemErr)
			result.ErrorCount++
			continue
		}
		result.SuccessCount++
	}
	return result, nil
}

func (s *BulkActionService) applyOne(action string, id uuid.UUID, authorize AuthorizeFunc) error {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BookingActionError{BookingID: id, Message: "booking not found"}
		}
		return BookingActionError{BookingID: id, Message: "database error: " + err.Error()}
	}

	if authorize != nil {
		if err := authorize(booking); err != nil {
			return BookingActionError{BookingID: id, Message: err.Error()}
		}
	}

	wasCompleted := booking.Status == models.BookingStatusCompleted

	if action == ActionDelete {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("booking_id = ?", booking.ID).
				Delete(&models.BookingOption{}).Error; err != nil {
				return err
			}
			return tx.Delete(&booking).Error
		})
		if err != nil {
			return BookingActionError{BookingID: id, Message: "failed to delete booking: " + err.Error()}
		}
		if wasCompleted {
			return s.recalcClient(booking)
		}
		return nil
	}

	newStatus := actionStatus[action]
	if err := s.db.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Update("status", newStatus).Error; err != nil {
		return BookingActionError{BookingID: id, Message: "failed to update status: " + err.Error()}
	}

	if wasCompleted != (newStatus == models.BookingStatusCompleted) {
		return s.recalcClient(booking)
	}
	return nil
}

// recalcClient refreshes the client aggregates after a completion-state
// change. The transition itself already stands at this point; a recompute
// failure is still surfaced as the item's error so drifted aggregates are
// never silent.
func (s *BulkActionService) recalcClient(booking models.Booking) error {
	if booking.ClientID == nil {
		return nil
	}
	if err := s.stats.Recalculate(*booking.ClientID); err != nil {
		return BookingActionError{
			BookingID: booking.ID,
			Message:   "stats recomputation failed: " + err.Error(),
		}
	}
	return nil
}
