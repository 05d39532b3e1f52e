// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It holds the adapters for the external emotion-classification
// collaborators (see lib/emotion).
package lib
