package utils

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// CloseSlotsSpec runs just after local midnight
const CloseSlotsSpec = "5 0 * * *"

// SlotCloser marks mentor slots whose date has passed as unavailable
type SlotCloser interface {
	CloseExpiredSlots(ctx context.Context) (int64, error)
}

// InitializeSlotScheduler starts the daily job that retires past mentor slots.
// The returned cron can be stopped on shutdown.
func InitializeSlotScheduler(clock *Clock, closer SlotCloser) (*cron.Cron, error) {
	log.Println("[SCHEDULER] Initializing slot scheduler...")

	c := cron.New(cron.WithLocation(clock.Location()))
	if _, err := c.AddFunc(CloseSlotsSpec, func() { RunSlotCleanup(context.Background(), closer) }); err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("[SCHEDULER] Slot scheduler started - runs daily at 00:05 %s", clock.Location())
	return c, nil
}

// RunSlotCleanup closes expired slots once and reports how many changed
func RunSlotCleanup(ctx context.Context, closer SlotCloser) int64 {
	log.Println("[SCHEDULER] Closing expired mentor slots...")
	closed, err := closer.CloseExpiredSlots(ctx)
	if err != nil {
		log.Printf("[SCHEDULER] Error closing expired slots: %v", err)
		return 0
	}
	log.Printf("[SCHEDULER] Closed %d expired slots", closed)
	return closed
}
