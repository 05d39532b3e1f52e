// Package handler is the first layer after the router.
//
// It binds requests, runs input validation through the validation
// package, and calls the service layer. It is the boundary between the
// HTTP request and the business logic.
package handler
