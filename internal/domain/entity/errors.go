package entity

import "errors"

// Standard domain errors
var (
	ErrGenerationFailed = errors.New("response generation failed")
	ErrInvalidRequest   = errors.New("invalid request parameters")
)
