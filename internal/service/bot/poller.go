package bot

import (
	"context"
	"log"
	"time"

	"github.com/varsha-bot/varsha/internal/telegram"
)

// UpdateSource pulls pending updates from the platform, used when no public
// webhook URL is configured.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]telegram.Update, error)
}

// pollTimeoutSec stays below the HTTP client's request timeout so a quiet
// long poll returns normally instead of erroring out.
const (
	pollTimeoutSec = 25
	pollRetryDelay = 3 * time.Second
)

// Poll long-polls the source until ctx is cancelled, handing each update to
// its own goroutine so a slow completion call never stalls the poll loop.
func (s *Service) Poll(ctx context.Context, source UpdateSource) {
	log.Printf("[bot] polling for updates")

	var offset int64
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		updates, err := source.GetUpdates(ctx, offset, pollTimeoutSec)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[bot] getUpdates failed: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			go s.HandleUpdate(ctx, update)
		}
	}
}
