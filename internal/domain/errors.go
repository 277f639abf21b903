package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// Travel precondition outcomes. These are expected results of gate scans,
// not system failures; handlers report them as informational.

type AlreadyStartedError struct {
	RequestID int64
}

func (e AlreadyStartedError) Error() string {
	return fmt.Sprintf("trip %d already departed", e.RequestID)
}

type AlreadyCompletedError struct {
	RequestID int64
}

func (e AlreadyCompletedError) Error() string {
	return fmt.Sprintf("trip %d already completed", e.RequestID)
}

type NotStartedError struct {
	RequestID int64
}

func (e NotStartedError) Error() string {
	return fmt.Sprintf("trip %d has no recorded departure", e.RequestID)
}

type CooldownActiveError struct {
	Tag       string
	Remaining string
}

func (e CooldownActiveError) Error() string {
	if e.Remaining != "" {
		return fmt.Sprintf("tag %s tapped too soon, retry in %s", e.Tag, e.Remaining)
	}
	return fmt.Sprintf("tag %s tapped too soon", e.Tag)
}

type UnknownTagError struct {
	Tag string
}

func (e UnknownTagError) Error() string {
	return fmt.Sprintf("tag %s is not registered to any vehicle", e.Tag)
}

type ForbiddenTagClassError struct {
	Tag   string
	Class string
}

func (e ForbiddenTagClassError) Error() string {
	return fmt.Sprintf("tag %s (%s vehicle) is not allowed on this lane", e.Tag, e.Class)
}

// Artifact pipeline stage failures. Caught and logged at the pipeline
// boundary; they never reach the decision caller.

type IssuanceError struct{ Err error }

func (e IssuanceError) Error() string { return "ticket number issuance failed" }
func (e IssuanceError) Unwrap() error { return e.Err }

type RenderError struct{ Err error }

func (e RenderError) Error() string { return "ticket document rendering failed" }
func (e RenderError) Unwrap() error { return e.Err }

type NotificationError struct{ Err error }

func (e NotificationError) Error() string { return "notification delivery failed" }
func (e NotificationError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsAlreadyStarted(err error) bool {
	var target AlreadyStartedError
	return errors.As(err, &target)
}

func IsAlreadyCompleted(err error) bool {
	var target AlreadyCompletedError
	return errors.As(err, &target)
}

func IsNotStarted(err error) bool {
	var target NotStartedError
	return errors.As(err, &target)
}

func IsCooldownActive(err error) bool {
	var target CooldownActiveError
	return errors.As(err, &target)
}

func IsUnknownTag(err error) bool {
	var target UnknownTagError
	return errors.As(err, &target)
}

func IsForbiddenTagClass(err error) bool {
	var target ForbiddenTagClassError
	return errors.As(err, &target)
}
