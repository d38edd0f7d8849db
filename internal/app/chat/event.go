/*
Package chat contains the core logic for presence tracking and real-time message delivery.

This file defines the outbound event envelope pushed over live connections. The
event names match the wire format consumed by the web client.
*/
package chat

import "encoding/json"

const (
	// EventOnlineUsers carries the full current list of online user IDs (not a delta).
	EventOnlineUsers = "getOnlineUsers"

	// EventNewMessage carries one full persisted message record, pushed only to
	// the recipient's live connection.
	EventNewMessage = "newMessage"
)

// Event is the envelope for every payload pushed over a live connection.
type Event struct {
	// Event names the event type (see the Event* constants).
	Event string `json:"event"`

	// Data is the event payload.
	Data any `json:"data"`
}

// EncodeEvent marshals an event envelope for transmission.
func EncodeEvent(name string, data any) ([]byte, error) {
	return json.Marshal(Event{Event: name, Data: data})
}
