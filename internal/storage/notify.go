// ABOUTME: Change notification for live queries over the store.
// ABOUTME: Committed writes publish touched tables; watchers re-run their query.
package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/harperreed/liftlog/internal/models"
)

// Table names used for change notification.
const (
	tableExercises = "exercises"
	tableWorkouts  = "workouts"
	tableEntries   = "workout_entries"
	tableSets      = "workout_sets"
)

type subscriber struct {
	tables map[string]bool
	// Buffered to one element so publishers never block; consecutive
	// invalidations coalesce into a single re-query.
	signal chan struct{}
}

type notifier struct {
	mu   sync.Mutex
	subs map[int]*subscriber
	next int
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[int]*subscriber)}
}

// subscribe registers interest in the given tables and returns the
// subscription id with its invalidation channel.
func (n *notifier) subscribe(tables ...string) (int, <-chan struct{}) {
	sub := &subscriber{
		tables: make(map[string]bool, len(tables)),
		signal: make(chan struct{}, 1),
	}
	for _, t := range tables {
		sub.tables[t] = true
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	n.subs[id] = sub
	return id, sub.signal
}

func (n *notifier) unsubscribe(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.subs, id)
}

// publish signals every subscriber interested in any of the tables.
// Called only after a write has committed, so watchers never observe a
// transaction in progress.
func (n *notifier) publish(tables ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, sub := range n.subs {
		for _, t := range tables {
			if sub.tables[t] {
				select {
				case sub.signal <- struct{}{}:
				default:
				}
				break
			}
		}
	}
}

// WatchWorkouts delivers the full workout list, newest first, once
// immediately and again after every committed write to the workouts
// table. Cancelling the context ends the subscription and closes the
// channel; stored data is unaffected.
func (d *DB) WatchWorkouts(ctx context.Context) (<-chan []*models.Workout, error) {
	return watch(ctx, d.notifier, d.ListWorkouts, tableWorkouts)
}

// WatchEntries delivers the entries of one workout, with their sets,
// re-queried whenever an entry or set row changes.
func (d *DB) WatchEntries(ctx context.Context, workoutID uuid.UUID) (<-chan []*models.Entry, error) {
	query := func() ([]*models.Entry, error) { return d.ListEntries(workoutID) }
	return watch(ctx, d.notifier, query, tableEntries, tableSets)
}

// WatchExercises delivers the exercise catalog filtered by the search
// substring (blank means the full list), refreshed after reconciliation
// or any other exercise write.
func (d *DB) WatchExercises(ctx context.Context, query string) (<-chan []*models.Exercise, error) {
	run := func() ([]*models.Exercise, error) { return d.SearchExercises(query) }
	return watch(ctx, d.notifier, run, tableExercises)
}

// watch runs the query once up front, then re-runs it on every
// invalidation signal, pushing each fresh snapshot to the returned
// channel. A query error drops that snapshot; the subscription stays up.
func watch[T any](ctx context.Context, n *notifier, query func() ([]T, error), tables ...string) (<-chan []T, error) {
	initial, err := query()
	if err != nil {
		return nil, err
	}

	id, signal := n.subscribe(tables...)
	out := make(chan []T, 1)
	out <- initial

	go func() {
		defer close(out)
		defer n.unsubscribe(id)
		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				snapshot, err := query()
				if err != nil {
					continue
				}
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
