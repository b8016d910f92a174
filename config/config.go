package config

import (
	"encoding/json"

	"github.com/creasty/defaults"
)

// Config Configuration
type Config struct {
	Log         LogConfig         `yaml:"log" json:"log" envconfig:"LOG"`
	Engine      EngineConfig      `yaml:"engine" json:"engine" envconfig:"ENGINE"`
	Scheduler   SchedulerConfig   `yaml:"scheduler" json:"scheduler" envconfig:"SCHEDULER"`
	Channel     ChannelConfig     `yaml:"channel" json:"channel" envconfig:"CHANNEL"`
	DispatchLog DispatchLogConfig `yaml:"dispatch_log" json:"dispatch_log" envconfig:"DISPATCH_LOG"`
	Metrics     MetricsConfig     `yaml:"metrics" json:"metrics" envconfig:"METRICS"`
}

func (cfg Config) String() string {
	bytes, err := json.Marshal(cfg)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

func (cfg Config) Validate() error {
	if err := cfg.Log.Validate(); err != nil {
		return err
	}
	if err := cfg.Engine.Validate(); err != nil {
		return err
	}
	if err := cfg.Scheduler.Validate(); err != nil {
		return err
	}
	if err := cfg.Channel.Validate(); err != nil {
		return err
	}
	if err := cfg.DispatchLog.Validate(); err != nil {
		return err
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return err
	}

	return nil
}

func New() *Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		panic(err)
	}
	return &cfg
}
