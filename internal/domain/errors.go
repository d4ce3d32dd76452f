package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrRequestNotFound = errors.New("request not found")
	ErrForbidden       = errors.New("forbidden access")
	ErrNoCapacity      = errors.New("no volunteer slots left")
	ErrAlreadyApplied  = errors.New("already applied to this post")
	ErrInvalidInput    = errors.New("invalid input")
)
