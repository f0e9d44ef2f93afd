package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Subscriber attaches its event handlers to a dispatcher.
type Subscriber interface {
	RegisterHandlers()
}

// Options configures the background workers started by Start.
type Options struct {
	Subscribers     []Subscriber
	Tokens          TokenPurger
	CleanupInterval time.Duration
	Logger          *zap.Logger
}

// Start registers event subscribers synchronously and launches the one-time
// token cleanup loop, which stops when ctx is done.
func Start(ctx context.Context, opts Options) {
	for _, s := range opts.Subscribers {
		if s != nil {
			s.RegisterHandlers()
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	go RunTokenCleanup(ctx, opts.Tokens, opts.CleanupInterval, logger)
}
