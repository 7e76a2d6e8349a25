package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yashsinghal2004/plinko-rgs/games/plinko"
)

// Memory is an in-process outcome cache.
type Memory struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Memory{c: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(_ context.Context, combinedSeed string, dropColumn int) (plinko.Outcome, bool) {
	v, ok := m.c.Get(key(combinedSeed, dropColumn))
	if !ok {
		return plinko.Outcome{}, false
	}
	out, ok := v.(plinko.Outcome)
	return out, ok
}

func (m *Memory) Set(_ context.Context, combinedSeed string, dropColumn int, out plinko.Outcome) {
	m.c.SetDefault(key(combinedSeed, dropColumn), out)
}

// Len reports the number of live entries.
func (m *Memory) Len() int {
	return m.c.ItemCount()
}
