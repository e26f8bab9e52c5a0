package hub

import (
	"time"

	"github.com/soar/inputmap/internal/storage"
)

// Message represents a WebSocket message sent from server to client.
type Message struct {
	Type      string         `json:"type"`                // "snapshot", "event" or "subscribed"
	Seq       int64          `json:"seq"`                 // Sequence number for ordering
	Timestamp int64          `json:"timestamp"`           // Unix timestamp in milliseconds
	Event     *storage.Event `json:"event,omitempty"`     // Mapping change for type "event"
	Devices   []string       `json:"devices,omitempty"`   // Known device IDs for type "snapshot"
	DeviceID  string         `json:"device_id,omitempty"` // Subscription target for type "subscribed"
}

// NewSnapshotMessage creates a "snapshot" message carrying the known devices.
func NewSnapshotMessage(seq int64, devices []string) *Message {
	return &Message{
		Type:      "snapshot",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Devices:   devices,
	}
}

// NewEventMessage creates an "event" message for one mapping change.
func NewEventMessage(seq int64, event storage.Event) *Message {
	return &Message{
		Type:      "event",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Event:     &event,
	}
}

// NewSubscribedMessage creates a "subscribed" confirmation message.
func NewSubscribedMessage(deviceID string) *Message {
	return &Message{
		Type:      "subscribed",
		Timestamp: time.Now().UnixMilli(),
		DeviceID:  deviceID,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type     string `json:"type"`
	DeviceID string `json:"device_id,omitempty"`
}
