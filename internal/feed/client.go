package feed

import "govlens/backend/internal/models"

// Client is the interface for one live status-feed subscriber. It abstracts
// the underlying transport so the hub can manage different client types
// uniformly (WebSocket in production, in-memory fakes in tests).
type Client interface {
	// GetID returns the unique identifier for this subscriber.
	GetID() string

	// GetSendChannel returns the channel to which the hub pushes status
	// updates intended for this subscriber. It is a send-only channel.
	GetSendChannel() chan<- models.StatusUpdate

	// Run starts the client's pumps, which deliver outgoing updates and
	// detect a closed connection.
	Run()
	// Close gracefully shuts down the client's connection and channels.
	Close()
}
