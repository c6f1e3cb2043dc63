package worker

import "context"

// Worker is a long-running unit supervised by the Manager. Start blocks
// until the context is cancelled or a fatal error occurs.
type Worker interface {
	Start(ctx context.Context) error
}
