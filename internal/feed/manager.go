// Package feed broadcasts complaint status updates to live subscribers.
// Updates travel through Redis Pub/Sub so every server instance sees
// transitions committed by any of them.
package feed

import (
	"context"
	"encoding/json"
	"log"

	"govlens/backend/internal/models"
	"govlens/backend/internal/storage"
)

// Hub is the dispatcher between the Redis update channel and the connected
// subscribers. All client registration and broadcasting is serialized through
// its Run loop.
type Hub struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	BroadcastCh  chan models.StatusUpdate

	Storage *storage.Service
}

// NewHub creates a hub backed by the given storage service.
func NewHub(s *storage.Service) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		BroadcastCh:  make(chan models.StatusUpdate),
		Storage:      s,
	}
}

// StartPubSubListener starts a goroutine that relays Redis Pub/Sub messages
// into the hub's broadcast channel.
func (h *Hub) StartPubSubListener() {
	go func() {
		pubsub := h.Storage.SubscribeStatusUpdates()
		defer pubsub.Close()

		ch := pubsub.Channel()

		for msg := range ch {
			var update models.StatusUpdate
			if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
				log.Printf("Error unmarshalling Redis update: %v", err)
				continue
			}
			h.BroadcastCh <- update
		}
	}()
}

// Run is the main dispatcher loop. It owns the Clients map; nothing else may
// touch it while the loop is running. The loop exits when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	if h.Storage != nil {
		h.StartPubSubListener()
	}

	for {
		select {
		case <-ctx.Done():
			for _, client := range h.Clients {
				client.Close()
			}
			return

		case client := <-h.RegisterCh:
			h.Clients[client.GetID()] = client
			log.Printf("INFO: Feed subscriber %s connected (%d total).", client.GetID(), len(h.Clients))

		case client := <-h.UnregisterCh:
			if _, ok := h.Clients[client.GetID()]; ok {
				delete(h.Clients, client.GetID())
				client.Close()
			}

		case update := <-h.BroadcastCh:
			for id, client := range h.Clients {
				select {
				case client.GetSendChannel() <- update:
				default:
					// Slow subscriber: drop it rather than stall the loop.
					delete(h.Clients, id)
					client.Close()
				}
			}
		}
	}
}
