package service

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindInvalidInput          ErrorKind = "InvalidInput"
	KindNotFound              ErrorKind = "NotFound"
	KindDuplicateNickname     ErrorKind = "DuplicateNickname"
	KindDuplicateTeamName     ErrorKind = "DuplicateTeamName"
	KindPlayerNotFound        ErrorKind = "PlayerNotFound"
	KindInvalidTeamCount      ErrorKind = "InvalidTeamCount"
	KindDuplicatePlayerInTeam ErrorKind = "DuplicatePlayerInTeam"
	KindMissingTeamChoiceName ErrorKind = "MissingTeamChoiceName"
)

// Error is an expected domain failure. Anything else reaching the handlers is a 500.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound, KindPlayerNotFound:
		return http.StatusNotFound
	case KindDuplicateNickname, KindDuplicateTeamName:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

var (
	ErrInvalidInput          = &Error{Kind: KindInvalidInput}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrDuplicateNickname     = &Error{Kind: KindDuplicateNickname}
	ErrDuplicateTeamName     = &Error{Kind: KindDuplicateTeamName}
	ErrPlayerNotFound        = &Error{Kind: KindPlayerNotFound}
	ErrInvalidTeamCount      = &Error{Kind: KindInvalidTeamCount}
	ErrDuplicatePlayerInTeam = &Error{Kind: KindDuplicatePlayerInTeam}
	ErrMissingTeamChoiceName = &Error{Kind: KindMissingTeamChoiceName}
)

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// StatusOf returns the HTTP status for err: the domain status, or 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status()
	}
	return http.StatusInternalServerError
}
