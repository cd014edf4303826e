package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus(t *testing.T) {
	bus := NewBus[string]()
	var got []string
	sub1 := bus.Subscribe(func(e string) { got = append(got, "1:"+e) })
	sub2 := bus.Subscribe(func(e string) { got = append(got, "2:"+e) })
	assert.NotEqual(t, sub1, sub2)
	assert.Equal(t, 2, bus.Len())

	bus.Publish("a")
	assert.Equal(t, []string{"1:a", "2:a"}, got)

	assert.True(t, bus.Unsubscribe(sub1))
	assert.False(t, bus.Unsubscribe(sub1))
	bus.Publish("b")
	assert.Equal(t, []string{"1:a", "2:a", "2:b"}, got)
	assert.Equal(t, 1, bus.Len())
}

func TestBusUnsubscribeDuringDelivery(t *testing.T) {
	bus := NewBus[int]()
	calls := 0
	var sub Subscription
	sub = bus.Subscribe(func(int) {
		calls++
		bus.Unsubscribe(sub)
	})
	bus.Publish(1)
	bus.Publish(2)
	assert.Equal(t, 1, calls)
}

func TestBusConcurrentPublish(t *testing.T) {
	bus := NewBus[int]()
	var lock sync.Mutex
	total := 0
	bus.Subscribe(func(n int) {
		lock.Lock()
		defer lock.Unlock()
		total += n
	})
	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			bus.Publish(n)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5050, total)
}
