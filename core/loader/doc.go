// Package loader mounts the HTTP features (accounts and integrity) on the server.
//
// A feature reports its name, whether the configuration enables it, and registers its
// routes in Load. The Manager loads enabled features in registration order and stops
// at the first one that fails, so a half-mounted server never starts.
package loader
