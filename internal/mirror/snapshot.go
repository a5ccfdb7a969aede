package mirror

import (
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Snapshot is the consumer-side keyed view of the orders mirror topic. It
// keeps the most recent record per order id; a tombstone removes the entry.
type Snapshot struct {
	lru *lru.Cache[string, OrderSummary]
}

func NewSnapshot(size int) (*Snapshot, error) {
	c, err := lru.New[string, OrderSummary](size)
	if err != nil {
		return nil, err
	}
	return &Snapshot{lru: c}, nil
}

func (s *Snapshot) Apply(key string, value []byte) error {
	if len(value) == 0 {
		s.lru.Remove(key)
		return nil
	}
	var sum OrderSummary
	if err := json.Unmarshal(value, &sum); err != nil {
		return err
	}
	s.lru.Add(key, sum)
	return nil
}

func (s *Snapshot) Get(orderID string) (OrderSummary, bool) {
	return s.lru.Get(orderID)
}

func (s *Snapshot) All() []OrderSummary {
	keys := s.lru.Keys()
	out := make([]OrderSummary, 0, len(keys))
	for _, k := range keys {
		if sum, ok := s.lru.Peek(k); ok {
			out = append(out, sum)
		}
	}
	return out
}

func (s *Snapshot) Len() int { return s.lru.Len() }
