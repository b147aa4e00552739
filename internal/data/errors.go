package data

import "errors"

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrInvalidRange    = errors.New("invalid range")
	ErrDataFormat      = errors.New("malformed source data")
	ErrDataUnavailable = errors.New("corpus data unavailable")
)
