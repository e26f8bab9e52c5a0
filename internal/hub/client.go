package hub

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// DeviceIndex answers whether a device ID is known. Subscriptions to unknown
// devices are rejected.
type DeviceIndex interface {
	Has(id string) bool
}

// Client represents a connected WebSocket client.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	deviceID string // device this client watches; empty means all devices
}

// NewClient creates a new Client attached to the hub. Clients start out
// watching every device.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// SetDevice narrows the client's subscription to one device. An empty id
// widens it back to all devices.
func (c *Client) SetDevice(id string) {
	c.hub.mu.Lock()
	c.deviceID = id
	c.hub.mu.Unlock()
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// ReadPump reads messages from the WebSocket and handles subscription
// commands until the connection drops.
func (c *Client) ReadPump(devices DeviceIndex) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			c.hub.log.Warn("bad client message", zap.Error(err))
			continue
		}

		switch clientMsg.Type {
		case "subscribe":
			if clientMsg.DeviceID != "" && !devices.Has(clientMsg.DeviceID) {
				c.hub.log.Warn("subscribe to unknown device", zap.String("device", clientMsg.DeviceID))
				continue
			}
			c.SetDevice(clientMsg.DeviceID)
			data, _ := json.Marshal(NewSubscribedMessage(clientMsg.DeviceID))
			select {
			case c.send <- data:
			default:
			}
			c.hub.log.Debug("client subscription changed", zap.String("device", clientMsg.DeviceID))
		}
	}
}
