// Package middlewares provides the HTTP middleware of the file service.
//
//   - RequestID assigns X-Request-ID and exposes it to the logger.
//   - Metrics records request counts and latencies in Prometheus.
//   - Recover turns panics into a PanicError for the error handler.
//   - CORS answers preflight requests for the configured origins.
//   - Authenticate resolves the bearer token into an auth.Identity.
//
// The global order used by the service is RequestID, Metrics, Recover, CORS;
// Authenticate is applied per route group.
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Metrics(m),
//	        middlewares.Recover(),
//	        middlewares.CORS(middlewares.WithAllowOrigins(cfg.Origins()...)),
//	    ),
//	)
//
// Handlers read the identity with GetIdentity and the request id with GetRequestID.
package middlewares
