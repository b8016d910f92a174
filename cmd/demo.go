package cmd

import (
	"github.com/embeddedengine-io/embeddedengine/app"
	"github.com/embeddedengine-io/embeddedengine/pkg/channel"
	"github.com/embeddedengine-io/embeddedengine/scheduler"
	"go.uber.org/zap"
)

// registerDemoWorkload wires a producer and a consumer task around a
// shared bounded channel. The producer drops a reading every pass; the
// consumer drains whatever is pending.
func registerDemoWorkload(app *app.Application) error {
	readings := channel.New[uint32](int(app.Config().Channel.Capacity))
	app.Registry().Set("demo.readings", readings)

	log := zap.S().Named("demo")
	m := app.Metrics()

	var next uint32
	err := app.Scheduler().AddNamedTask("demo-producer", scheduler.TaskFunc(func() {
		if err := readings.Send(next); err != nil {
			log.Warnf("reading %d dropped: %v", next, err)
			return
		}
		if m.Enabled {
			m.ChannelSendCounter.Add(1)
		}
		next++
	}))
	if err != nil {
		return err
	}

	return app.Scheduler().AddNamedTask("demo-consumer", scheduler.TaskFunc(func() {
		for {
			v, ok := readings.Receive()
			if !ok {
				return
			}
			if m.Enabled {
				m.ChannelReceiveCounter.Add(1)
			}
			log.Infof("received reading %d", v)
		}
	}))
}
