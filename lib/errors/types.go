package errors

type PermissionDeniedError struct {
	Resource string
	Action   string
	Reason   string
}

func (e *PermissionDeniedError) Error() string {
	if e.Reason != "" {
		return "permission denied: " + e.Action + " on " + e.Resource + ": " +
			e.Reason
	}
	return "permission denied: " + e.Action + " on " + e.Resource
}

func NewPermissionDeniedError(resource, action,
	reason string) *PermissionDeniedError {
	return &PermissionDeniedError{
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

type InvalidArgumentError struct {
	Argument string
	Reason   string
}

func (e *InvalidArgumentError) Error() string {
	if e.Reason != "" {
		return "invalid argument " + e.Argument + ": " + e.Reason
	}
	return "invalid argument: " + e.Argument
}

func NewInvalidArgumentError(argument, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Argument: argument, Reason: reason}
}

type FailedPreconditionError struct {
	Resource string
	State    string
	Reason   string
}

func (e *FailedPreconditionError) Error() string {
	if e.Reason != "" {
		return e.Resource + " " + e.State + ": " + e.Reason
	}
	return e.Resource + " " + e.State
}

func NewFailedPreconditionError(resource, state,
	reason string) *FailedPreconditionError {
	return &FailedPreconditionError{
		Resource: resource,
		State:    state,
		Reason:   reason,
	}
}

type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return e.Service + " unavailable: " + e.Reason
	}
	return e.Service + " unavailable"
}

func NewUnavailableError(service, reason string) *UnavailableError {
	return &UnavailableError{Service: service, Reason: reason}
}

// AbortedError is returned when the operator declined to continue.
type AbortedError struct {
	Operation string
	Reason    string
}

func (e *AbortedError) Error() string {
	if e.Reason != "" {
		return e.Operation + " aborted: " + e.Reason
	}
	return e.Operation + " aborted"
}

func NewAbortedError(operation, reason string) *AbortedError {
	return &AbortedError{Operation: operation, Reason: reason}
}
