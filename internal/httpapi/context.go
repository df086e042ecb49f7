package httpapi

import (
	"context"
)

// serverBaseCtx is canceled on shutdown. Generations consult it, together
// with the request context, before starting each sequence.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts derives a context from a that is also canceled when b is done.
// The returned cancel func must be called when the handler ends.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	if b.Err() != nil {
		// AfterFunc fires asynchronously; a b that is already done must
		// cancel before the handler looks at ctx.
		cancel()
	}
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
