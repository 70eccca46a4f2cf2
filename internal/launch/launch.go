// Package launch opens the UI in the user's default browser once the server
// is accepting connections.
package launch

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/browser"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

// Open launches the default browser at url. A failure is logged, not
// returned: the server keeps running and the user can open the page by hand.
func Open(url string) bool {
	if err := openURL(url); err != nil {
		slog.Warn("could not open browser", "url", url, "error", err)
		return false
	}
	slog.Info("opened browser", "url", url)
	return true
}

// AfterStart opens url once delay has passed, unless ctx ends first.
// It returns immediately; the returned channel is closed when the attempt
// has finished or was abandoned.
func AfterStart(ctx context.Context, url string, delay time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			Open(url)
		}
	}()
	return done
}
