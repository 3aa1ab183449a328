package workflow

import (
	"fmt"
	"strings"
)

// ValidationError reports every precondition a transition payload failed,
// not just the first one. The review is guaranteed unchanged.
type ValidationError struct {
	Operation string
	Failures  []string
}

func NewValidationError(operation string, failures ...string) *ValidationError {
	return &ValidationError{Operation: operation, Failures: failures}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation failed: %s", e.Operation, strings.Join(e.Failures, "; "))
}

// InvalidStateError signals a transition attempted from a state that does
// not permit it. Usually stale client data.
type InvalidStateError struct {
	Operation string
	Status    string
}

func NewInvalidStateError(operation, status string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Status: status}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s not allowed while review is %q", e.Operation, e.Status)
}

// NotAuthorizedError signals an actor attempting a transition they are not
// permitted to perform.
type NotAuthorizedError struct {
	Operation string
	ActorID   string
	Role      Role
}

func NewNotAuthorizedError(operation, actorID string, role Role) *NotAuthorizedError {
	return &NotAuthorizedError{Operation: operation, ActorID: actorID, Role: role}
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("%s: actor %s (%s) is not authorized", e.Operation, e.ActorID, e.Role)
}
