package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans newly logged activities out to websocket subscribers. Clients
// subscribe per author: following someone live means registering for that
// author's feed channel. Redis pub/sub bridges broadcasts across instances.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	AuthorID string
	Send     chan []byte
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

func (h *Hub) Register(authorID string) *Client {
	client := &Client{
		AuthorID: authorID,
		Send:     make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[authorID] == nil {
		h.clients[authorID] = map[*Client]struct{}{}
	}
	h.clients[authorID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if authorClients, ok := h.clients[client.AuthorID]; ok {
		delete(authorClients, client)
		if len(authorClients) == 0 {
			delete(h.clients, client.AuthorID)
		}
	}
	close(client.Send)
}

// Broadcast delivers payload to every subscriber of authorID's feed. Slow
// clients are skipped rather than blocking the caller.
func (h *Hub) Broadcast(authorID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[authorID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(authorID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "activity:*:feed")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		authorID := authorIDFromChannel(msg.Channel)
		h.mu.RLock()
		clients := h.clients[authorID]
		h.mu.RUnlock()
		for client := range clients {
			select {
			case client.Send <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func redisChannel(authorID string) string {
	return "activity:" + authorID + ":feed"
}

func authorIDFromChannel(ch string) string {
	// activity:{author}:feed
	const prefix = "activity:"
	const suffix = ":feed"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
