package tracking

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	intcache "shuttle/internal/cache"
)

// PositionUpdate is one report from a vehicle on an active trip.
type PositionUpdate struct {
	VehicleID  int64     `json:"vehicleId"`
	TripID     int64     `json:"tripId,omitempty"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recordedAt"`
}

type clientConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (cc *clientConn) send(data []byte) error {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans position updates out to dashboard websocket clients and keeps
// the latest position per vehicle in Redis so a fresh client can render
// the fleet without waiting for the next report.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*clientConn
	cache   *intcache.Redis
}

func NewHub(cache *intcache.Redis) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*clientConn),
		cache:   cache,
	}
}

// HandleClientConn registers a dashboard connection and blocks until it
// closes. Inbound frames from dashboards are ignored.
func (h *Hub) HandleClientConn(c *websocket.Conn) {
	cc := &clientConn{conn: c}

	h.mu.Lock()
	h.clients[c] = cc
	total := len(h.clients)
	h.mu.Unlock()

	log.WithField("clients", total).Info("tracking client connected")

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		_ = c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// Publish stores the update and broadcasts it to connected dashboards.
func (h *Hub) Publish(u PositionUpdate) {
	if u.RecordedAt.IsZero() {
		u.RecordedAt = time.Now()
	}
	if err := h.cache.SetVehiclePosition(context.Background(), u.VehicleID, u.Lat, u.Lng); err != nil {
		log.WithError(err).Warn("position store failed")
	}

	data, err := json.Marshal(u)
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*clientConn, 0, len(h.clients))
	for _, cc := range h.clients {
		conns = append(conns, cc)
	}
	h.mu.RUnlock()

	for _, cc := range conns {
		if err := cc.send(data); err != nil {
			log.WithError(err).Debug("tracking send failed")
		}
	}
}

// LastPosition returns the last stored position of a vehicle.
func (h *Hub) LastPosition(vehicleID int64) (PositionUpdate, bool) {
	lat, lng, ok := h.cache.VehiclePosition(context.Background(), vehicleID)
	if !ok {
		return PositionUpdate{}, false
	}
	return PositionUpdate{VehicleID: vehicleID, Lat: lat, Lng: lng}, true
}

// ClientCount reports connected dashboard clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
