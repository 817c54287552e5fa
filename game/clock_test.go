package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameClockSubscribeAndCancel(t *testing.T) {
	clock := NewFrameClock()
	var deltas []float64
	sub := clock.Subscribe(func(deltaTime float64) {
		deltas = append(deltas, deltaTime)
	})
	assert.Equal(t, 1, clock.SubscriberCount())

	clock.Tick(0.5)
	clock.Tick(0.25)
	assert.Equal(t, []float64{0.5, 0.25}, deltas)

	sub.Cancel()
	sub.Cancel()
	assert.Zero(t, clock.SubscriberCount())
	clock.Tick(1)
	assert.Len(t, deltas, 2)
	assert.Equal(t, uint64(3), clock.FrameCount())
}

func TestFrameClockCancelDuringTick(t *testing.T) {
	clock := NewFrameClock()
	calls := 0
	var second *Subscription
	clock.Subscribe(func(float64) {
		calls++
		second.Cancel()
	})
	second = clock.Subscribe(func(float64) {
		calls += 100
	})

	clock.Tick(0.1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, clock.SubscriberCount())
}

func TestFrameClockTickNow(t *testing.T) {
	clock := NewFrameClock()
	var deltas []float64
	clock.Subscribe(func(deltaTime float64) {
		deltas = append(deltas, deltaTime)
	})
	clock.TickNow()
	clock.TickNow()
	assert.Len(t, deltas, 2)
	assert.Zero(t, deltas[0])
	assert.GreaterOrEqual(t, deltas[1], 0.0)
}

func TestNilSubscriptionCancel(t *testing.T) {
	var sub *Subscription
	assert.NotPanics(t, sub.Cancel)
}
