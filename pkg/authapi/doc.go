// Package authapi defines the wire types for the VedaKart auth service and
// provides a small HTTP client for calling it.
//
// The server handlers and the storefront/mobile callers share these types so
// the JSON contract lives in exactly one place. Error responses follow the
// {"error", "error_description"} shape throughout.
package authapi
