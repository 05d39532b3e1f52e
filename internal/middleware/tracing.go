package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/emotion-detector/internal/server"
)

// TracingMiddleware owns New Relic related Echo middleware.
//
// It needs:
//   - server: for shared deps (logger/config)
//   - nrApp: the New Relic application instance (nil if New Relic disabled)
//
// This middleware has two layers:
//  1. NewRelicMiddleware()     -> installs New Relic transaction handling into Echo
//  2. EnhanceTracing()         -> adds custom attributes and notices errors
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware returns the New Relic Echo middleware.
//
// What it does:
//   - If nrApp is nil, return a no-op middleware (passes request through unchanged).
//   - If nrApp exists, return nrecho.Middleware(tm.nrApp), which starts a
//     transaction for each request and stores it in the request context.
//
// This middleware is what makes newrelic.FromContext(...) work later, in
// the handler pipeline, the emotion service and the Watson round tripper.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		// No-op middleware: doesn't wrap the handler, just returns it.
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing returns middleware that adds extra attributes to the New Relic transaction.
//
// What it adds:
//   - http.real_ip and http.user_agent
//   - request.id (from the RequestID middleware)
//   - http.status_code, once the handler has run
//   - the returned error, noticed with its stack trace
//
// If no transaction is found (txn == nil), it does nothing. That happens when:
//   - New Relic is disabled
//   - NewRelicMiddleware wasn't installed
//   - the middleware order is wrong
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Get the transaction created by nrecho middleware.
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			// Client info.
			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.user_agent", c.Request().UserAgent())

			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}

			// Run the rest of the chain.
			err := next(c)
			if err != nil {
				// nrpkgerrors keeps the pkg/errors stack trace on the noticed error.
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}

			// Errors are written later by the error handler, so failed
			// requests may still report 200 here.
			txn.AddAttribute("http.status_code", c.Response().Status)

			return err
		}
	}
}
