// Package live pushes seat availability updates to websocket
// subscribers, keyed by event.
package live

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type seatUpdate struct {
	EventID        string `json:"eventid"`
	AvailableSeats int    `json:"available_seats"`
}

var (
	mu          sync.Mutex
	subscribers = make(map[string]map[*websocket.Conn]bool)
)

// SeatUpdates upgrades the request and subscribes the client to seat
// changes for one event. The connection is dropped on the first read
// error (client closed).
func SeatUpdates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live: upgrade failed: %v", err)
		return
	}

	mu.Lock()
	if subscribers[eventID] == nil {
		subscribers[eventID] = make(map[*websocket.Conn]bool)
	}
	subscribers[eventID][conn] = true
	mu.Unlock()

	go func() {
		defer unsubscribe(eventID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func unsubscribe(eventID string, conn *websocket.Conn) {
	mu.Lock()
	if conns := subscribers[eventID]; conns != nil {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(subscribers, eventID)
		}
	}
	mu.Unlock()
	conn.Close()
}

// BroadcastSeats fans the current seat count out to every subscriber
// of the event. Dead connections are pruned as they fail.
func BroadcastSeats(eventID string, availableSeats int) {
	msg := seatUpdate{EventID: eventID, AvailableSeats: availableSeats}

	mu.Lock()
	conns := make([]*websocket.Conn, 0, len(subscribers[eventID]))
	for conn := range subscribers[eventID] {
		conns = append(conns, conn)
	}
	mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			unsubscribe(eventID, conn)
		}
	}
}
