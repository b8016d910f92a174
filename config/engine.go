package config

import (
	"fmt"
)

type Pool struct {
	Size        uint32 `yaml:"size" json:"size" default:"1024"`
	Concurrency uint32 `yaml:"concurrency" json:"concurrency" default:"4"`
}

// EngineConfig controls the dispatch run loop and the executor pool used
// for offloaded work and event delivery.
type EngineConfig struct {
	// TickInterval is the delay between two dispatch passes, in milliseconds.
	TickInterval uint32 `yaml:"tick_interval" json:"tick_interval" envconfig:"TICK_INTERVAL" default:"100"`
	Pool         Pool   `yaml:"pool" json:"pool"`
}

func (cfg EngineConfig) Validate() error {
	if cfg.TickInterval < 1 || cfg.TickInterval > 60000 {
		return fmt.Errorf("tick_interval must be in the range [1, 60000]")
	}
	if cfg.Pool.Concurrency < 1 {
		return fmt.Errorf("pool.concurrency must be at least 1")
	}
	return nil
}
