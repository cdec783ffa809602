package client

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrNotServing    = errors.New("server not serving")
	ErrUnknownTarget = errors.New("unknown health service")
)
