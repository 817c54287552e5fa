package game

import (
	"sync"
	"time"
)

// TickSource calls subscribers once per frame with the frame delta in seconds.
type TickSource interface {
	Subscribe(callback func(deltaTime float64)) *Subscription
}

type Subscription struct {
	clock *FrameClock
	id    uint64
	once  sync.Once
}

// Cancel may be called more than once.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.clock.unsubscribe(s.id)
	})
}

type subscriber struct {
	id       uint64
	callback func(deltaTime float64)
}

// FrameClock is a TickSource driven by whoever owns the frame loop. Callbacks
// run on the goroutine calling Tick and may subscribe or cancel.
type FrameClock struct {
	mutex       sync.Mutex
	nextID      uint64
	subscribers []subscriber
	frameCount  uint64
	lastTick    time.Time
}

func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

func (c *FrameClock) Subscribe(callback func(deltaTime float64)) *Subscription {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.nextID++
	c.subscribers = append(c.subscribers, subscriber{id: c.nextID, callback: callback})
	return &Subscription{clock: c, id: c.nextID}
}

func (c *FrameClock) unsubscribe(id uint64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for i, sub := range c.subscribers {
		if sub.id == id {
			c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
			return
		}
	}
}

func (c *FrameClock) SubscriberCount() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.subscribers)
}

func (c *FrameClock) FrameCount() uint64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.frameCount
}

// Tick runs every subscriber that was registered when the tick started.
func (c *FrameClock) Tick(deltaTime float64) {
	c.mutex.Lock()
	c.frameCount++
	current := make([]subscriber, len(c.subscribers))
	copy(current, c.subscribers)
	c.mutex.Unlock()

	for _, sub := range current {
		if !c.isSubscribed(sub.id) {
			continue
		}
		sub.callback(deltaTime)
	}
}

// TickNow measures the delta since the previous TickNow call.
func (c *FrameClock) TickNow() {
	now := time.Now()
	c.mutex.Lock()
	deltaTime := 0.0
	if !c.lastTick.IsZero() {
		deltaTime = now.Sub(c.lastTick).Seconds()
	}
	c.lastTick = now
	c.mutex.Unlock()
	c.Tick(deltaTime)
}

func (c *FrameClock) isSubscribed(id uint64) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for _, sub := range c.subscribers {
		if sub.id == id {
			return true
		}
	}
	return false
}
