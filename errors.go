package dappkitty

import "errors"

var (
	// ErrNoHost is returned when activation is attempted without a host.
	ErrNoHost = errors.New("dappkitty: no host")
	// ErrNoSink is returned when the host has no sink and no default sink
	// factory is registered.
	ErrNoSink = errors.New("dappkitty: no render sink; set one on the host or import adapter/writer")
	// ErrInactive is returned when the activation gate refuses to start.
	ErrInactive = errors.New("dappkitty: inactive for this environment")
)
