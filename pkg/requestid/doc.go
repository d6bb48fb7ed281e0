// Package requestid tags every request of the session service with an
// X-Request-ID so log records of one request can be correlated. Inbound ids
// are reused when well formed; otherwise a UUID is generated.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
