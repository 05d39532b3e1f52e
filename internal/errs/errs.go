// Package errs defines custom error types and utilities.
//
// Its purpose is to create specific error structures
// (e.g. HTTPError for API responses) so clients receive
// consistent error messages no matter where the error started.
package errs
