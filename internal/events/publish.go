package events

import (
	"log/slog"
	"time"

	"github.com/thenoetrevino/kanboard/internal/types"
)

// DefaultPublishRetries is the retry budget services use for change events
const DefaultPublishRetries = 3

// PublishWithRetry attempts to publish an event with retry logic.
// It makes up to maxRetries attempts with exponential backoff.
// Returns the error from the final attempt if all retries fail.
//
// Delivery is best effort: callers log the error and carry on, since the
// change itself is already committed.
func PublishWithRetry(client EventPublisher, event Event, maxRetries int) error {
	if client == nil {
		return nil // no daemon configured
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := client.SendEvent(event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"event_type", event.Type,
					"board_id", event.BoardID)
			}
			return nil
		}

		lastErr = err

		// Don't sleep after the last attempt
		if attempt < maxRetries-1 {
			// Exponential backoff: 50ms, 100ms, 200ms
			delay := baseDelay * (1 << attempt)
			slog.Debug("event publish failed, retrying",
				"attempt", attempt+1,
				"max_retries", maxRetries,
				"retry_delay", delay,
				"error", err)
			time.Sleep(delay)
		}
	}

	slog.Warn("event publish failed after all retries",
		"attempts", maxRetries,
		"event_type", event.Type,
		"board_id", event.BoardID,
		"error", lastErr)

	return lastErr
}

// BoardChanged publishes a change notification for one board
func BoardChanged(client EventPublisher, boardID types.BoardID) error {
	return PublishWithRetry(client, Event{
		Type:      EventBoardChanged,
		BoardID:   boardID,
		Timestamp: time.Now(),
	}, DefaultPublishRetries)
}
