package main

import (
	"context"
	"log"
	"time"

	"github.com/joestump/joe-blog/internal/store"
)

// historyRecorder is the part of the generation store the writer needs.
type historyRecorder interface {
	Record(ctx context.Context, g store.Generation) error
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// runHistoryWriter persists generation records from ch. With a positive
// retention it prunes older rows once at start and then every pruneEvery. On
// context cancellation it drains the events still queued before returning.
func runHistoryWriter(ctx context.Context, ch <-chan store.Generation, gs historyRecorder, retention, pruneEvery time.Duration) {
	var tick <-chan time.Time
	if retention > 0 {
		prune(ctx, gs, retention)
		t := time.NewTicker(pruneEvery)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case g, ok := <-ch:
			if !ok {
				return
			}
			if err := gs.Record(ctx, g); err != nil {
				log.Printf("history write error: %v", err)
			}
		case <-tick:
			prune(ctx, gs, retention)
		case <-ctx.Done():
			for {
				select {
				case g, ok := <-ch:
					if !ok {
						return
					}
					if err := gs.Record(context.Background(), g); err != nil {
						log.Printf("history drain error: %v", err)
					}
				default:
					return
				}
			}
		}
	}
}

func prune(ctx context.Context, gs historyRecorder, retention time.Duration) {
	n, err := gs.DeleteBefore(ctx, time.Now().Add(-retention))
	if err != nil {
		log.Printf("history prune error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("history: pruned %d generations older than %s", n, retention)
	}
}
