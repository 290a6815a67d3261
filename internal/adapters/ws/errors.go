package ws

import "errors"

var (
	ErrMessageTypeRequired        = errors.New("message type is required")
	ErrUnknownMessageType         = errors.New("unknown message type")
	ErrClientEventChannelNotFound = errors.New("client event channel not found")
	ErrClientStopped              = errors.New("client is stopped")
	ErrSendChannelFull            = errors.New("client send channel is full")
)
