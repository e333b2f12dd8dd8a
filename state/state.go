// Package state provides the ephemeral keyed store shared by the
// collectors: TTL'd values, per-callsign field maps, channel-style
// publish/subscribe, and the outbound event queues.
package state

import "time"

// Store is the cache and messaging surface consumed by the collectors.
// Per-key operations are atomic. The multi-step diff-then-replace
// sequence in the presence reconciler is not transactional; callers
// must ensure at most one in-flight cycle per feed.
type Store interface {
	// Set writes a value under key. A ttl of zero means no expiry.
	Set(key, value string, ttl time.Duration)
	Get(key string) (string, bool)
	Delete(key string)
	// Expire refreshes the TTL of an existing key, reporting whether
	// the key was present.
	Expire(key string, ttl time.Duration) bool

	// SetFields writes a field map under key, replacing any prior map.
	SetFields(key string, fields map[string]string, ttl time.Duration)
	GetFields(key string) (map[string]string, bool)

	// Publish delivers payload to current subscribers of channel.
	// Delivery is best-effort; slow subscribers miss messages.
	Publish(channel, payload string)
	Subscribe(channel string) <-chan string

	// Enqueue appends payload to a durable, ordered outbound queue.
	Enqueue(queue string, payload []byte)
	Dequeue(queue string) ([]byte, bool)
}
