package dispatchlog

import (
	"fmt"
	"time"

	"github.com/embeddedengine-io/embeddedengine/utils"
	"github.com/rs/zerolog"
)

// Outcome of a single task execution.
const (
	OutcomeOK    = "ok"
	OutcomePanic = "panic"
)

// Entry records one task execution within a dispatch pass.
type Entry struct {
	Pass     uint64
	TaskID   string
	TaskName string
	Latency  time.Duration
	Outcome  string
	Panic    string
}

func (m *Entry) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("pass", m.Pass)
	e.Dict("task", zerolog.Dict().
		Str("id", m.TaskID).
		Str("name", m.TaskName),
	)
	e.Str("outcome", m.Outcome)
	if m.Panic != "" {
		e.Str("panic", m.Panic)
	}
	e.Int64("latency", m.Latency.Microseconds())
}

func (m *Entry) String() string {
	return fmt.Sprintf(`#%d "%s" %s %dus %s`,
		m.Pass,
		utils.DefaultIfZero(m.TaskName, m.TaskID),
		m.Outcome,
		m.Latency.Microseconds(),
		utils.DefaultIfZero(m.Panic, "-"),
	)
}
