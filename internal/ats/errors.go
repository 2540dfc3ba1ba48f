package ats

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedURL means the input URL matched no known platform
// pattern. The public wrappers surface it as a nil result.
var ErrUnrecognizedURL = errors.New("url does not match any known ats platform")

// ErrJobNotFound means the platform answered but the requested job id
// was not in its data.
var ErrJobNotFound = errors.New("job not found on platform")

// FetchError is a non-2xx answer from a platform API.
type FetchError struct {
	Platform Platform
	Status   int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s api status %d", e.Platform, e.Status)
}

// DecodeError is a platform response whose body could not be decoded.
type DecodeError struct {
	Platform Platform
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s decode: %v", e.Platform, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
