// services/reconciler.go
package services

import (
	"log"

	"github.com/robfig/cron/v3"
)

// Reconciler runs the nightly maintenance jobs: full recomputation of every
// client's aggregates (the incremental updates are only a cache) and
// day-before booking reminders.
type Reconciler struct {
	stats    *ClientStatsService
	notifier *NotificationService
	cron     *cron.Cron
}

func NewReconciler(stats *ClientStatsService, notifier *NotificationService) *Reconciler {
	return &Reconciler{
		stats:    stats,
		notifier: notifier,
		cron:     cron.New(),
	}
}

func (r *Reconciler) Start() {
	// Recompute client aggregates at 3 AM
	r.cron.AddFunc("0 3 * * *", func() {
		updated, err := r.stats.RecalculateAll()
		if err != nil {
			log.Printf("Stats reconciliation finished with errors (%d updated): %v", updated, err)
			return
		}
		log.Printf("Stats reconciliation completed, %d clients updated", updated)
	})

	// Send booking reminders at 9 AM
	r.cron.AddFunc("0 9 * * *", func() {
		r.notifier.SendBookingReminders()
	})

	r.cron.Start()
	log.Println("Reconciliation scheduler started")
}

func (r *Reconciler) Stop() {
	r.cron.Stop()
}
