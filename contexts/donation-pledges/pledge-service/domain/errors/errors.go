package errors

import "errors"

var (
	ErrInvalidPledgeInput = errors.New("invalid pledge input")
	ErrPledgeNotFound     = errors.New("pledge not found")
)
