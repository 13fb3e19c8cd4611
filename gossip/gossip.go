// Package gossip is the peer-to-peer envelope relay cmd/groupctl uses to
// exchange operations with other group members (spec §6). It is a
// transport only: it never parses, verifies, or interprets what it
// relays — that stays the job of envelope.Verify and group.Interpret
// (spec §5's "gossip never participates in Interpret's computation").
package gossip

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/tos-network/groupdag/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub exchanges raw envelope bytes with every peer connected to it:
// Broadcast sends to all of them, and whatever they send arrives on
// Inbox. Received envelopes are not forwarded to the other peers.
type Hub struct {
	mu    sync.Mutex
	peers map[*peer]struct{}

	// Inbox receives every envelope read from any peer, for the caller
	// to verify and feed into store.Store / group.Interpret.
	Inbox chan []byte
}

type peer struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub returns an empty Hub with a buffered Inbox.
func NewHub() *Hub {
	return &Hub{peers: make(map[*peer]struct{}), Inbox: make(chan []byte, 256)}
}

// ServeHTTP upgrades an incoming HTTP request to a websocket connection
// and begins relaying through it.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("gossip: upgrade failed", "err", err)
		return
	}
	h.adopt(conn)
}

// Dial connects outward to a peer's gossip endpoint, e.g.
// "ws://host:port/gossip", and begins relaying through it.
func (h *Hub) Dial(addr string) error {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return err
	}
	h.adopt(conn)
	return nil
}

func (h *Hub) adopt(conn *websocket.Conn) {
	p := &peer{conn: conn, send: make(chan []byte, 64)}
	h.mu.Lock()
	h.peers[p] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(p)
	go h.readLoop(p)
}

func (h *Hub) readLoop(p *peer) {
	defer h.drop(p)
	for {
		_, msg, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		select {
		case h.Inbox <- msg:
		default:
			log.Warn("gossip: inbox full, dropping received envelope")
		}
	}
}

func (h *Hub) writeLoop(p *peer) {
	defer p.conn.Close()
	for msg := range p.send {
		if err := p.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			return
		}
	}
}

func (h *Hub) drop(p *peer) {
	h.mu.Lock()
	_, ok := h.peers[p]
	delete(h.peers, p)
	h.mu.Unlock()
	if ok {
		close(p.send)
	}
}

// Broadcast relays raw to every currently connected peer. Peers whose
// send buffer is full are skipped rather than blocking the broadcaster.
func (h *Hub) Broadcast(raw []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for p := range h.peers {
		select {
		case p.send <- raw:
		default:
			log.Warn("gossip: peer send buffer full, dropping envelope")
		}
	}
}

// PeerCount returns the number of currently connected peers.
func (h *Hub) PeerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

// Close shuts down every peer connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for p := range h.peers {
		p.conn.Close()
	}
}
