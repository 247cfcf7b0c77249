package notify

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans awarded-medal events out to websocket subscribers. Events
// are also published to redis so every API instance can deliver to the
// athletes connected to it.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	AthleteID string
	Send      chan []byte
}

type Event struct {
	Type      string `json:"type"`
	AthleteID string `json:"athlete_id"`
	Code      string `json:"code"`
	Event     string `json:"event,omitempty"`
	Detail    string `json:"detail,omitempty"`
	AwardedAt string `json:"awarded_at,omitempty"`
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(athleteID string) *Client {
	client := &Client{
		AthleteID: athleteID,
		Send:      make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[athleteID] == nil {
		h.clients[athleteID] = map[*Client]struct{}{}
	}
	h.clients[athleteID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if athleteClients, ok := h.clients[client.AthleteID]; ok {
		delete(athleteClients, client)
		if len(athleteClients) == 0 {
			delete(h.clients, client.AthleteID)
		}
	}
	close(client.Send)
}

// Notify is best-effort. A marshal or publish failure is logged and
// never propagated to the caller; awards must not fail because a
// notification could not be delivered.
func (h *Hub) Notify(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("notify marshal error: %v", err)
		return
	}
	h.Broadcast(event.AthleteID, payload)
}

func (h *Hub) Broadcast(athleteID string, payload []byte) {
	// Sends stay under the read lock so Unregister cannot close a
	// channel mid-fanout. The select keeps them non-blocking.
	h.mu.RLock()
	for client := range h.clients[athleteID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
	h.mu.RUnlock()

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(athleteID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.Subscribe(ctx, "medals:*:events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		athleteID := athleteIDFromChannel(msg.Channel)
		h.mu.RLock()
		for client := range h.clients[athleteID] {
			select {
			case client.Send <- []byte(msg.Payload):
			default:
			}
		}
		h.mu.RUnlock()
	}
}

func redisChannel(athleteID string) string {
	return "medals:" + athleteID + ":events"
}

func athleteIDFromChannel(ch string) string {
	// medals:{athlete}:events
	const prefix = "medals:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
