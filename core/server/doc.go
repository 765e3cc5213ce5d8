// Package server holds the HTTP server configuration.
//
// The Config struct defines the listen port, the API key and the upload body limit.
// The start command validates it before the Fiber app is created.
package server
