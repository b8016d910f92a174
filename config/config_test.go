package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, LogLevelInfo, cfg.Log.Level)
	assert.Equal(t, LogFormatText, cfg.Log.Format)
	assert.EqualValues(t, 100, cfg.Engine.TickInterval)
	assert.EqualValues(t, 1024, cfg.Engine.Pool.Size)
	assert.EqualValues(t, 4, cfg.Engine.Pool.Concurrency)
	assert.EqualValues(t, 1024, cfg.Scheduler.MaxTasks)
	assert.EqualValues(t, 16, cfg.Channel.Capacity)
	assert.False(t, cfg.DispatchLog.Enabled)
}

func TestLogConfig(t *testing.T) {
	tests := []struct {
		desc                string
		cfg                 LogConfig
		expectedValidateErr error
	}{
		{
			desc: "sanity",
			cfg: LogConfig{
				Level:  LogLevelInfo,
				Format: LogFormatText,
			},
			expectedValidateErr: nil,
		},
		{
			desc: "invalid level",
			cfg: LogConfig{
				Level:  "",
				Format: LogFormatText,
			},
			expectedValidateErr: errors.New("invalid level: "),
		},
		{
			desc: "invalid format",
			cfg: LogConfig{
				Level:  LogLevelInfo,
				Format: "unknown",
			},
			expectedValidateErr: errors.New("invalid format: unknown"),
		},
	}
	for _, test := range tests {
		actualValidateErr := test.cfg.Validate()
		assert.Equal(t, test.expectedValidateErr, actualValidateErr, "expected %v got %v", test.expectedValidateErr, actualValidateErr)
	}
}

func TestEngineConfig(t *testing.T) {
	tests := []struct {
		desc                string
		cfg                 EngineConfig
		expectedValidateErr error
	}{
		{
			desc:                "sanity",
			cfg:                 EngineConfig{TickInterval: 100, Pool: Pool{Size: 1024, Concurrency: 4}},
			expectedValidateErr: nil,
		},
		{
			desc:                "zero interval",
			cfg:                 EngineConfig{TickInterval: 0, Pool: Pool{Size: 1024, Concurrency: 4}},
			expectedValidateErr: errors.New("tick_interval must be in the range [1, 60000]"),
		},
		{
			desc:                "interval too large",
			cfg:                 EngineConfig{TickInterval: 60001, Pool: Pool{Size: 1024, Concurrency: 4}},
			expectedValidateErr: errors.New("tick_interval must be in the range [1, 60000]"),
		},
		{
			desc:                "zero concurrency",
			cfg:                 EngineConfig{TickInterval: 100, Pool: Pool{Size: 1024}},
			expectedValidateErr: errors.New("pool.concurrency must be at least 1"),
		},
	}
	for _, test := range tests {
		actualValidateErr := test.cfg.Validate()
		assert.Equal(t, test.expectedValidateErr, actualValidateErr, "expected %v got %v", test.expectedValidateErr, actualValidateErr)
	}
}

func TestSchedulerConfig(t *testing.T) {
	assert.NoError(t, SchedulerConfig{MaxTasks: 1}.Validate())
	assert.EqualError(t, SchedulerConfig{MaxTasks: 0}.Validate(), "max_tasks must be at least 1")
}

func TestChannelConfig(t *testing.T) {
	assert.NoError(t, ChannelConfig{Capacity: 1}.Validate())
	assert.EqualError(t, ChannelConfig{Capacity: 0}.Validate(), "capacity must be at least 1")
}

func TestMetricsConfig(t *testing.T) {
	cfg := MetricsConfig{
		OpenTelemetry: Opentelemetry{
			PushInterval: 10,
			Protocol:     OtlpProtocolHTTP,
		},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Exports = []Export{"prometheus"}
	assert.EqualError(t, cfg.Validate(), "invalid export: prometheus")

	cfg.Exports = nil
	cfg.OpenTelemetry.Protocol = "udp"
	assert.EqualError(t, cfg.Validate(), "invalid protocol: udp")
}

func TestLoad(t *testing.T) {
	content := `
log:
  level: debug
  format: json
engine:
  tick_interval: 50
scheduler:
  max_tasks: 8
channel:
  capacity: 2
dispatch_log:
  enabled: true
`
	cfg := New()
	err := NewLoader(cfg).WithFileContent([]byte(content)).Load()
	assert.NoError(t, err)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, LogLevelDebug, cfg.Log.Level)
	assert.Equal(t, LogFormatJson, cfg.Log.Format)
	assert.EqualValues(t, 50, cfg.Engine.TickInterval)
	assert.EqualValues(t, 8, cfg.Scheduler.MaxTasks)
	assert.EqualValues(t, 2, cfg.Channel.Capacity)
	assert.True(t, cfg.DispatchLog.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("EMBEDDEDENGINE_LOG_LEVEL", "warn")
	t.Setenv("EMBEDDEDENGINE_SCHEDULER_MAX_TASKS", "4")

	cfg := New()
	err := Load("", cfg)
	assert.NoError(t, err)
	assert.Equal(t, LogLevelWarn, cfg.Log.Level)
	assert.EqualValues(t, 4, cfg.Scheduler.MaxTasks)
}
