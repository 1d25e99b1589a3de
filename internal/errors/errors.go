// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrNotFound signals a missing campaign or contact group.
type ErrNotFound struct {
	Resource string
	ID       int
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

// ErrInvalidArgument signals a validation failure detected before any write.
type ErrInvalidArgument struct {
	Reason string
}

func (e *ErrInvalidArgument) Error() string {
	return e.Reason
}

// ErrConflict signals an illegal status transition (e.g. sending a campaign
// that is not a draft).
type ErrConflict struct {
	Reason string
}

func (e *ErrConflict) Error() string {
	return e.Reason
}

// ErrInvalidState signals an operation against a campaign whose settings
// forbid it (e.g. RSVP on a campaign with RSVP disabled).
type ErrInvalidState struct {
	Reason string
}

func (e *ErrInvalidState) Error() string {
	return e.Reason
}

// Helper constructors
func NewCampaignNotFound(id int) error {
	return &ErrNotFound{Resource: "campaign", ID: id}
}

func NewContactGroupNotFound(id int) error {
	return &ErrNotFound{Resource: "contact group", ID: id}
}

func NewInvalidArgument(format string, args ...any) error {
	return &ErrInvalidArgument{Reason: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...any) error {
	return &ErrConflict{Reason: fmt.Sprintf(format, args...)}
}

func NewInvalidState(format string, args ...any) error {
	return &ErrInvalidState{Reason: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var e *ErrNotFound
	return errors.As(err, &e)
}

func IsInvalidArgument(err error) bool {
	var e *ErrInvalidArgument
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ErrConflict
	return errors.As(err, &e)
}

func IsInvalidState(err error) bool {
	var e *ErrInvalidState
	return errors.As(err, &e)
}
