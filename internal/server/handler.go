package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/soar/inputmap/internal/device"
	"github.com/soar/inputmap/internal/hub"
	"github.com/soar/inputmap/internal/joystick"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local use
	},
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := hub.NewClient(s.hub, conn)
	s.hub.Register(client)

	// Send the known device list to the new client
	s.broadcaster.SendSnapshot(client)

	go client.WritePump()
	go client.ReadPump(s.registry)
}

// deviceRecord is a device snapshot plus its derived ID. Only detached
// copies reach the encoder; the live records change under the manager's
// lock while requests are in flight.
type deviceRecord struct {
	ID string `json:"id"`
	*device.Device
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices := s.manager.Devices()
	out := make([]deviceRecord, 0, len(devices))
	for _, dev := range devices {
		out = append(out, deviceRecord{ID: dev.ID(), Device: dev})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	var identity device.Identity
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		http.Error(w, "bad device descriptor: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !identity.Valid() {
		http.Error(w, "device name required", http.StatusBadRequest)
		return
	}

	dev := s.manager.Snapshot(s.manager.RegisterDevice(identity))
	writeJSON(w, http.StatusCreated, deviceRecord{ID: dev.ID(), Device: dev})
}

func (s *Server) handleButtonMap(w http.ResponseWriter, r *http.Request) {
	dev, ok := s.deviceFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.manager.ButtonMaps(dev))
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	dev, ok := s.deviceFromPath(w, r)
	if !ok {
		return
	}

	features := s.manager.Features(dev, r.PathValue("controller"))
	if features == nil {
		features = []joystick.Feature{}
	}
	writeJSON(w, http.StatusOK, features)
}

func (s *Server) handleMapFeatures(w http.ResponseWriter, r *http.Request) {
	dev, ok := s.deviceFromPath(w, r)
	if !ok {
		return
	}

	var features []joystick.Feature
	if err := json.NewDecoder(r.Body).Decode(&features); err != nil {
		http.Error(w, "bad feature list: "+err.Error(), http.StatusBadRequest)
		return
	}

	result := s.manager.MapFeatures(dev, r.PathValue("controller"), features)
	if result == nil {
		result = []joystick.Feature{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleResetProfile(w http.ResponseWriter, r *http.Request) {
	dev, ok := s.deviceFromPath(w, r)
	if !ok {
		return
	}

	reset, err := s.manager.Reset(dev, r.PathValue("controller"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reset": reset})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	dev, ok := s.deviceFromPath(w, r)
	if !ok {
		return
	}

	if err := s.manager.Save(dev); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRevert(w http.ResponseWriter, r *http.Request) {
	dev, ok := s.deviceFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reverted": s.manager.Revert(dev)})
}

func (s *Server) deviceFromPath(w http.ResponseWriter, r *http.Request) (*device.Device, bool) {
	dev, ok := s.registry.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "unknown device", http.StatusNotFound)
		return nil, false
	}
	return dev, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
