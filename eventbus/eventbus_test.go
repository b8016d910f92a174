package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/embeddedengine-io/embeddedengine/pkg/pool"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBroadcast(t *testing.T) {
	executor := pool.NewPool(10, 1)
	defer executor.Shutdown()

	bus := NewEventBus(zap.S(), executor)

	var got atomic.Value
	bus.Subscribe(EventTaskPanic, func(data interface{}) {
		got.Store(data.(*TaskPanicData))
	})

	bus.Broadcast(EventTaskPanic, &TaskPanicData{Pass: 1, TaskName: "producer", Value: "boom"})

	assert.Eventually(t, func() bool {
		return got.Load() != nil
	}, time.Second, time.Millisecond*10)
	data := got.Load().(*TaskPanicData)
	assert.EqualValues(t, 1, data.Pass)
	assert.Equal(t, "producer", data.TaskName)
	assert.Equal(t, "boom", data.Value)
}

func TestUnsubscribe(t *testing.T) {
	executor := pool.NewPool(10, 1)
	defer executor.Shutdown()

	bus := NewEventBus(zap.S(), executor)

	var n atomic.Int64
	var cb Callback = func(data interface{}) { n.Add(1) }
	bus.Subscribe(EventPassCompleted, cb)
	bus.Broadcast(EventPassCompleted, &PassCompletedData{Pass: 1})

	assert.Eventually(t, func() bool {
		return n.Load() == 1
	}, time.Second, time.Millisecond*10)

	bus.Unsubscribe(EventPassCompleted, cb)
	bus.Broadcast(EventPassCompleted, &PassCompletedData{Pass: 2})
	time.Sleep(time.Millisecond * 50)
	assert.EqualValues(t, 1, n.Load())
}
