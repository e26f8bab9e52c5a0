package hub

import (
	"encoding/json"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/soar/inputmap/internal/storage"
)

// DeviceLister provides the known device IDs for snapshots.
type DeviceLister interface {
	IDs() []string
}

// Broadcaster drains mapping events and fans them out to watching clients.
type Broadcaster struct {
	log     *zap.Logger
	hub     *Hub
	events  <-chan storage.Event
	devices DeviceLister
	seq     atomic.Int64
}

func NewBroadcaster(log *zap.Logger, h *Hub, events <-chan storage.Event, devices DeviceLister) *Broadcaster {
	return &Broadcaster{
		log:     log,
		hub:     h,
		events:  events,
		devices: devices,
	}
}

// Run forwards events until the channel closes. Should be run in a goroutine.
func (b *Broadcaster) Run() {
	for event := range b.events {
		msg := NewEventMessage(b.seq.Add(1), event)
		data, err := json.Marshal(msg)
		if err != nil {
			b.log.Error("marshaling event failed", zap.Error(err))
			continue
		}
		b.hub.BroadcastToDevice(data, event.DeviceID)
	}
}

// SendSnapshot sends the known device list to a newly connected client.
func (b *Broadcaster) SendSnapshot(c *Client) {
	msg := NewSnapshotMessage(b.seq.Add(1), b.devices.IDs())
	data, err := json.Marshal(msg)
	if err != nil {
		b.log.Error("marshaling snapshot failed", zap.Error(err))
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
