package config

import (
	"fmt"
)

type ChannelConfig struct {
	// Capacity is the default capacity for channels created through the
	// application registry.
	Capacity uint32 `yaml:"capacity" json:"capacity" envconfig:"CAPACITY" default:"16"`
}

func (cfg ChannelConfig) Validate() error {
	if cfg.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1")
	}
	return nil
}
