package action

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultStepDelay is the pause between consecutive batch items, kept so the
// backend's generation capacity is never hit with back-to-back requests.
const DefaultStepDelay = 1000 * time.Millisecond

// DefaultRetention bounds how long a finished batch stays addressable for
// polling. Results can carry full data URLs, so the runner must not hold
// them for the life of the process.
const DefaultRetention = 10 * time.Minute

// Step produces the result for one batch item.
type Step func(ctx context.Context, index int) (string, error)

// Batch is one sequential multi-item run. Items are processed strictly in
// order; a failure at item k stops the run but keeps the results for items
// before k, so partial success stays visible.
type Batch struct {
	ID string

	total int
	delay time.Duration

	mu         sync.Mutex
	processed  int
	results    map[int]string
	state      State
	finishedAt time.Time

	done chan struct{}
}

// Snapshot is a point-in-time view of a batch, shaped for polling responses.
type Snapshot struct {
	ID        string         `json:"id"`
	Status    string         `json:"status"`
	Error     string         `json:"error,omitempty"`
	Total     int            `json:"total"`
	Completed int            `json:"completed"`
	Results   map[int]string `json:"results"`
}

// Runner starts batches and keeps them addressable for progress polling.
type Runner struct {
	delay     time.Duration
	retention time.Duration

	mu      sync.Mutex
	batches map[string]*Batch
}

func NewRunner(delay, retention time.Duration) *Runner {
	return &Runner{
		delay:     delay,
		retention: retention,
		batches:   make(map[string]*Batch),
	}
}

// Start launches a batch of total items and returns immediately. The caller
// observes progress through Snapshot or waits on Done.
func (r *Runner) Start(ctx context.Context, total int, step Step) *Batch {
	b := &Batch{
		ID:      uuid.NewString(),
		total:   total,
		delay:   r.delay,
		results: make(map[int]string),
		state:   Loading(),
		done:    make(chan struct{}),
	}

	r.mu.Lock()
	r.evictExpired(time.Now())
	r.batches[b.ID] = b
	r.mu.Unlock()

	go b.run(ctx, step)
	return b
}

func (r *Runner) Get(id string) (*Batch, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired(time.Now())
	b, ok := r.batches[id]
	return b, ok
}

// evictExpired drops batches that finished more than the retention window
// ago. Running batches are never evicted. Callers hold r.mu.
func (r *Runner) evictExpired(now time.Time) {
	cutoff := now.Add(-r.retention)
	for id, b := range r.batches {
		if b.finishedBefore(cutoff) {
			delete(r.batches, id)
		}
	}
}

func (b *Batch) run(ctx context.Context, step Step) {
	defer close(b.done)

	for i := 0; i < b.total; i++ {
		result, err := step(ctx, i)
		if err != nil {
			b.finish(Failed(err.Error()))
			return
		}

		b.mu.Lock()
		b.processed++
		// An empty result means the step produced nothing usable for this
		// item; the caller renders a placeholder and no entry is recorded.
		if result != "" {
			b.results[i] = result
		}
		b.mu.Unlock()

		// No pause after the final item.
		if i < b.total-1 {
			select {
			case <-ctx.Done():
				b.finish(Failed(ctx.Err().Error()))
				return
			case <-time.After(b.delay):
			}
		}
	}

	b.finish(Succeeded())
}

func (b *Batch) finish(state State) {
	b.mu.Lock()
	b.state = state
	b.finishedAt = time.Now()
	b.mu.Unlock()
}

func (b *Batch) finishedBefore(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.finishedAt.IsZero() && b.finishedAt.Before(cutoff)
}

// Done is closed once the batch has finished, successfully or not.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

func (b *Batch) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	results := make(map[int]string, len(b.results))
	for k, v := range b.results {
		results[k] = v
	}
	return Snapshot{
		ID:        b.ID,
		Status:    b.state.Status.String(),
		Error:     b.state.Message,
		Total:     b.total,
		Completed: b.processed,
		Results:   results,
	}
}
