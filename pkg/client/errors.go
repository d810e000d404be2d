package client

import "github.com/pkg/errors"

var (
	// ErrConnection is returned when the daemon cannot be reached or rejects the handshake.
	ErrConnection = errors.New("connection error")

	// ErrRPC is returned when the daemon answers with an unexpected or failed response.
	ErrRPC = errors.New("rpc error")
)
