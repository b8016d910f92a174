package eventbus

import (
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/embeddedengine-io/embeddedengine/pkg/pool"
	"go.uber.org/zap"
)

const broadcastTimeout = time.Second

// EventBus is the in-process notification fabric. Subscribers run on the
// executor pool so a broadcast from inside a dispatch pass never stalls
// the pass.
type EventBus struct {
	log  *zap.SugaredLogger
	bus  evbus.Bus
	pool *pool.Pool
}

func NewEventBus(log *zap.SugaredLogger, executor *pool.Pool) *EventBus {
	return &EventBus{
		log:  log.Named("eventbus"),
		bus:  evbus.New(),
		pool: executor,
	}
}

func (bus *EventBus) Subscribe(event string, cb Callback) {
	if err := bus.bus.Subscribe(event, cb); err != nil {
		bus.log.Errorf("failed to subscribe to %s: %v", event, err)
	}
}

func (bus *EventBus) Unsubscribe(event string, cb Callback) {
	if err := bus.bus.Unsubscribe(event, cb); err != nil {
		bus.log.Errorf("failed to unsubscribe from %s: %v", event, err)
	}
}

// Broadcast delivers data to every subscriber of event. Delivery is
// asynchronous; a broadcast is dropped with an error log when the
// executor pool stays full past the timeout.
func (bus *EventBus) Broadcast(event string, data interface{}) {
	err := bus.pool.SubmitFn(broadcastTimeout, func() {
		bus.bus.Publish(event, data)
	})
	if err != nil {
		bus.log.Errorf("failed to broadcast %s: %v", event, err)
	}
}
