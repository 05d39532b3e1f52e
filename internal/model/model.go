// Package model holds the request and response shapes of the HTTP API.
package model
