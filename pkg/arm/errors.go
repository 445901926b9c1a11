package arm

import "fmt"

type (
	// TemplateError is implemented by every error the synthesis pipeline can
	// surface. The code groups errors for callers that report or count them
	// without inspecting concrete types.
	TemplateError interface {
		error
		ErrorCode() ErrorCode
	}

	ErrorCode string
)

const (
	ValidationErrCode  ErrorCode = "validation_failed"
	CircularRefCode    ErrorCode = "circular_reference"
	OrphanResourceCode ErrorCode = "resource_orphaned"
	ScopeViolationCode ErrorCode = "scope_violation"
	ImmutableCode      ErrorCode = "immutable_resource"
	InternalErrCode    ErrorCode = "internal"
)

// ValidationError reports a malformed or missing resource property at
// construction time, before any field is stored. Message states what is
// wrong, Details narrows it to the offending value, Suggestion says how to
// fix it.
type ValidationError struct {
	Field      string
	Message    string
	Details    string
	Suggestion string
}

func (e *ValidationError) Error() string {
	s := fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	if e.Details != "" {
		s += " (" + e.Details + ")"
	}
	if e.Suggestion != "" {
		s += ". " + e.Suggestion
	}
	return s
}

func (e *ValidationError) ErrorCode() ErrorCode { return ValidationErrCode }

// CircularReferenceError is raised when traversal encounters the same
// construct path twice in a single pass.
type CircularReferenceError struct {
	Path string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference detected in construct tree at '%s'", e.Path)
}

func (e *CircularReferenceError) ErrorCode() ErrorCode { return CircularRefCode }

// OrphanResourceError is raised when a resource construct has no stack
// ancestor. Every resource must be created beneath exactly one stack.
type OrphanResourceError struct {
	Path string
}

func (e *OrphanResourceError) Error() string {
	return fmt.Sprintf("resource '%s' does not belong to any stack: create it beneath a SubscriptionStack or ResourceGroupStack", e.Path)
}

func (e *OrphanResourceError) ErrorCode() ErrorCode { return OrphanResourceCode }

// ScopeViolationError is raised when a subscription-scoped ARM type is
// placed inside a resource-group stack.
type ScopeViolationError struct {
	ResourceType string
	ResourcePath string
	StackName    string
	StackScope   DeploymentScope
}

func (e *ScopeViolationError) Error() string {
	return fmt.Sprintf(
		"Subscription-scoped resource '%s' at '%s' cannot be deployed to %s stack '%s': move it to a subscription stack",
		e.ResourceType, e.ResourcePath, e.StackScope, e.StackName)
}

func (e *ScopeViolationError) ErrorCode() ErrorCode { return ScopeViolationCode }

// ImmutableError is returned by mutators that exist only to satisfy an
// interface. Resources are configured once at construction.
type ImmutableError struct {
	Resource  string
	Operation string
}

func (e *ImmutableError) Error() string {
	return fmt.Sprintf("%s is immutable once constructed: set %s through the constructor props instead", e.Resource, e.Operation)
}

func (e *ImmutableError) ErrorCode() ErrorCode { return ImmutableCode }

// InternalError wraps failures that indicate a bug in the synthesis pipeline
// rather than bad input.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal synthesis error: %v", e.Err)
}

func (e *InternalError) ErrorCode() ErrorCode { return InternalErrCode }

func (e *InternalError) Unwrap() error { return e.Err }
