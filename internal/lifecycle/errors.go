package lifecycle

import "fmt"

type ErrInvalidTransition struct {
	error
	From string
	To   string
}

func NewErrInvalidTransition(from, to string) *ErrInvalidTransition {
	return &ErrInvalidTransition{
		error: fmt.Errorf("invalid transition from %q to %q", from, to),
		From:  from,
		To:    to,
	}
}

type ErrUnauthorizedTransition struct {
	error
}

func NewErrUnauthorizedTransition(role Role, to string) *ErrUnauthorizedTransition {
	return &ErrUnauthorizedTransition{fmt.Errorf("role %q may not transition an application to %q", role, to)}
}
