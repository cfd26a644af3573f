package ingest

import (
	"sync"
	"time"
)

// QuotaTracker enforces the daily request budget for comment-thread page
// fetches. It is the single authoritative counter: clients never track their
// own usage. The budget resets at UTC midnight.
type QuotaTracker struct {
	mu    sync.Mutex
	limit int
	used  int
	day   time.Time
	clock Clock
}

// NewQuotaTracker builds a tracker for the given daily limit. A non-positive
// limit disables enforcement.
func NewQuotaTracker(limit int, clock Clock) *QuotaTracker {
	return &QuotaTracker{limit: limit, clock: clock}
}

// Charge consumes one request from today's budget. It returns
// ErrQuotaExhausted when the budget is already spent.
func (q *QuotaTracker) Charge() error {
	if q == nil || q.limit <= 0 {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rollover()
	if q.used >= q.limit {
		return ErrQuotaExhausted
	}
	q.used++
	return nil
}

// Remaining reports how many requests are left in today's budget. A disabled
// tracker reports -1.
func (q *QuotaTracker) Remaining() int {
	if q == nil || q.limit <= 0 {
		return -1
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rollover()
	return q.limit - q.used
}

// Used reports how many requests were charged against today's budget.
func (q *QuotaTracker) Used() int {
	if q == nil || q.limit <= 0 {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rollover()
	return q.used
}

func (q *QuotaTracker) rollover() {
	today := q.clock.Now().UTC().Truncate(24 * time.Hour)
	if !today.Equal(q.day) {
		q.day = today
		q.used = 0
	}
}
