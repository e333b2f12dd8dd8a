package state

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const subscriberBuffer = 64

type entry struct {
	value  string
	fields map[string]string
}

// Memory is an in-process Store. Expiry is delegated to one expirable
// LRU per distinct TTL, since each cache carries a single TTL; the
// store only ever sees a handful of TTLs (membership, live records,
// no-expiry), so the bucket scan on reads stays cheap.
type Memory struct {
	mu      sync.Mutex
	buckets map[time.Duration]*expirable.LRU[string, entry]
	subs    map[string][]chan string
	queues  map[string][][]byte
}

func NewMemory() *Memory {
	return &Memory{
		buckets: make(map[time.Duration]*expirable.LRU[string, entry]),
		subs:    make(map[string][]chan string),
		queues:  make(map[string][][]byte),
	}
}

// bucket returns the cache for ttl, creating it on first use.
// Callers must hold m.mu.
func (m *Memory) bucket(ttl time.Duration) *expirable.LRU[string, entry] {
	b, ok := m.buckets[ttl]
	if !ok {
		b = expirable.NewLRU[string, entry](0, nil, ttl)
		m.buckets[ttl] = b
	}
	return b
}

// set stores e under key in the ttl bucket, clearing the key from any
// other bucket so a rewrite with a new TTL cannot leave a stale copy.
func (m *Memory) set(key string, e entry, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for t, b := range m.buckets {
		if t != ttl {
			b.Remove(key)
		}
	}
	m.bucket(ttl).Add(key, e)
}

func (m *Memory) lookup(key string) (entry, time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ttl, b := range m.buckets {
		if e, ok := b.Get(key); ok {
			return e, ttl, true
		}
	}
	return entry{}, 0, false
}

func (m *Memory) Set(key, value string, ttl time.Duration) {
	m.set(key, entry{value: value}, ttl)
}

func (m *Memory) Get(key string) (string, bool) {
	e, _, ok := m.lookup(key)
	return e.value, ok
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.buckets {
		b.Remove(key)
	}
}

func (m *Memory) Expire(key string, ttl time.Duration) bool {
	e, _, ok := m.lookup(key)
	if !ok {
		return false
	}
	m.set(key, e, ttl)
	return true
}

func (m *Memory) SetFields(key string, fields map[string]string, ttl time.Duration) {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	m.set(key, entry{fields: copied}, ttl)
}

func (m *Memory) GetFields(key string) (map[string]string, bool) {
	e, _, ok := m.lookup(key)
	if !ok || e.fields == nil {
		return nil, false
	}
	out := make(map[string]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out, true
}

func (m *Memory) Publish(channel, payload string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs[channel] {
		select {
		case ch <- payload:
		default:
			// Subscriber buffer full; drop rather than block the cycle.
		}
	}
}

func (m *Memory) Subscribe(channel string) <-chan string {
	ch := make(chan string, subscriberBuffer)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs[channel] = append(m.subs[channel], ch)
	return ch
}

func (m *Memory) Enqueue(queue string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues[queue] = append(m.queues[queue], payload)
}

func (m *Memory) Dequeue(queue string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := m.queues[queue]
	if len(q) == 0 {
		return nil, false
	}
	head := q[0]
	m.queues[queue] = q[1:]
	return head, true
}
