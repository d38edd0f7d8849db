/*
Package chat contains the core logic for presence tracking and real-time message delivery.

This file defines the Hub, which owns the connection Registry and implements session
bootstrap (bind/release) and the presence broadcast. Delivery to each connection is
best-effort and independent: a failed push kicks that one connection into its own
disconnect path and never aborts delivery to the others.
*/
package chat

import (
	"github.com/rs/zerolog"

	"connectify/internal/pkg/logx"
)

// Hub coordinates the connection registry and presence fan-out.
type Hub struct {
	registry *Registry

	// structured logger with Hub context.
	logger zerolog.Logger
}

// NewHub constructs a Hub with an empty registry.
func NewHub() *Hub {
	return &Hub{
		registry: NewRegistry(),
		logger:   logx.Logger().With().Str("component", "Hub").Logger(),
	}
}

// Registry exposes the hub's connection registry for lookups by the delivery pipeline.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Bind registers an accepted connection. If the user already held a connection,
// the superseded one is kicked (most-recent connection wins). A presence
// announcement follows every successful registration.
func (h *Hub) Bind(p Peer) {
	superseded := h.registry.Register(p)

	if superseded != nil {
		h.logger.Warn().
			Str("user_id", p.UserID()).
			Msg("User already connected. Closing old connection for replacement.")

		superseded.Kick("Session replaced by new connection. Check other tabs.")
	}

	h.logger.Info().
		Str("user_id", p.UserID()).
		Int("online_count", len(h.registry.OnlineIDs())).
		Msg("Connection bound.")

	h.Announce()
}

// Release unregisters a disconnected connection and announces the updated online
// set. The announcement happens regardless of whether the unregister removed
// anything, so cleanup stays idempotent; a stale release from a superseded
// connection leaves the registry untouched.
func (h *Hub) Release(p Peer) {
	removed := h.registry.Unregister(p)

	if removed {
		h.logger.Info().
			Str("user_id", p.UserID()).
			Msg("Connection released.")
	} else {
		h.logger.Info().
			Str("user_id", p.UserID()).
			Msg("Ignoring release for stale or unknown connection.")
	}

	h.Announce()
}

// Announce takes a consistent snapshot of the online user IDs and pushes it to
// every currently registered connection.
func (h *Hub) Announce() {
	ids := h.registry.OnlineIDs()

	data, err := EncodeEvent(EventOnlineUsers, ids)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode presence event.")
		return
	}

	for _, p := range h.registry.Snapshot() {
		if err := p.Enqueue(data); err != nil {
			// The failed connection is closed through its own disconnect path;
			// delivery to the remaining connections continues.
			h.logger.Warn().
				Err(err).
				Str("user_id", p.UserID()).
				Msg("Presence push failed, kicking connection.")

			p.Kick("Connection is not keeping up.")
		}
	}
}

// Deliver pushes an encoded message event to the recipient's live connection.
// It reports whether the push was queued; the caller treats false as "recipient
// will fetch the message from history later", never as an error.
func (h *Hub) Deliver(recipientID string, msg any) bool {
	p := h.registry.Lookup(recipientID)
	if p == nil {
		return false
	}

	data, err := EncodeEvent(EventNewMessage, msg)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode message event.")
		return false
	}

	if err := p.Enqueue(data); err != nil {
		h.logger.Warn().
			Err(err).
			Str("user_id", recipientID).
			Msg("Live message push failed, kicking connection.")

		p.Kick("Connection is not keeping up.")
		return false
	}

	return true
}
