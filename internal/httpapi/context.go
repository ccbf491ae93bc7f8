package httpapi

import (
	"context"
	"net/http"
)

// serverBaseCtx is canceled on shutdown so in-flight upstream calls stop too.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts derives a context from req that is also canceled when base
// is done. Values (request id) come from req.
func joinContexts(base, req context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(req)
	stop := context.AfterFunc(base, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// requestContext joins the server base context with the request context and
// applies the configured request timeout.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	if requestTimeout <= 0 {
		return ctx, cancel
	}
	tctx, tcancel := context.WithTimeout(ctx, requestTimeout)
	return tctx, func() {
		tcancel()
		cancel()
	}
}

// aborted reports whether the client went away.
func aborted(r *http.Request) bool {
	return r.Context().Err() != nil
}

func shuttingDown() bool {
	return serverBaseCtx.Err() != nil
}
