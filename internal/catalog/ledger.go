package catalog

import "sync"

// ledger holds the per-user star ratings of a single video. Each video
// gets its own ledger with its own lock, so ratings on different videos
// never contend.
type ledger struct {
	mu      sync.Mutex
	entries []ratingEntry
}

type ratingEntry struct {
	user   string
	rating float64
}

func newLedger() *ledger {
	return &ledger{}
}

// upsert records the user's rating, overwriting an earlier rating from
// the same user. A ledger holds at most one entry per user.
func (l *ledger) upsert(user string, rating float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].user == user {
			l.entries[i].rating = rating
			return
		}
	}
	l.entries = append(l.entries, ratingEntry{user: user, rating: rating})
}

// average recomputes the mean over the current entries. A ledger with no
// entries averages to 0.
func (l *ledger) average() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == 0 {
		return 0
	}
	var sum float64
	for _, e := range l.entries {
		sum += e.rating
	}
	return sum / float64(len(l.entries))
}

func (l *ledger) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
