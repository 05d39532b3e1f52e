// Package service contains the business logic.
//
// It sits between the handler layer and the external collaborators.
// It receives validated data from the handler, calls the collaborator
// and shapes its answer into response models.
package service
