// Package middleware holds the fiber middleware registered by the start command.
//
// The rayid subpackage runs first and tags each request with an id that handlers pass
// to logger.WithRayID. The auth subpackage checks the X-API-Key header and is bypassed
// for the Prometheus scrape path.
package middleware
