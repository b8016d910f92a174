package config

import (
	"fmt"
)

type SchedulerConfig struct {
	// MaxTasks caps the number of registered tasks. Registrations beyond
	// the cap are rejected.
	MaxTasks uint32 `yaml:"max_tasks" json:"max_tasks" envconfig:"MAX_TASKS" default:"1024"`
}

func (cfg SchedulerConfig) Validate() error {
	if cfg.MaxTasks < 1 {
		return fmt.Errorf("max_tasks must be at least 1")
	}
	return nil
}
