package dispatchlog

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	_, err := NewLogger("dispatch", Options{Format: "text"})
	assert.EqualError(t, err, "dispatchlog file is required")

	_, err = NewLogger("dispatch", Options{File: "/dev/stdout", Format: "xml"})
	assert.EqualError(t, err, "invalid format: xml")

	logger, err := NewLogger("dispatch", Options{File: "/dev/stdout", Format: "json"})
	assert.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestJsonLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJsonLogger("dispatch", &buf)
	logger.Log(&Entry{
		Pass:     3,
		TaskID:   "0195a0c8",
		TaskName: "producer",
		Latency:  time.Millisecond * 2,
		Outcome:  OutcomeOK,
	})

	var record map[string]interface{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.EqualValues(t, 3, record["pass"])
	assert.Equal(t, "ok", record["outcome"])
	assert.EqualValues(t, 2000, record["latency"])
	task := record["task"].(map[string]interface{})
	assert.Equal(t, "producer", task["name"])
	_, hasPanic := record["panic"]
	assert.False(t, hasPanic)
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTextLogger("dispatch", &buf, false)
	logger.Log(&Entry{
		Pass:     1,
		TaskID:   "0195a0c8",
		TaskName: "consumer",
		Latency:  time.Microsecond * 150,
		Outcome:  OutcomePanic,
		Panic:    "boom",
	})

	out := buf.String()
	assert.Contains(t, out, `#1 "consumer" panic 150us boom`)
	assert.Contains(t, out, "[dispatch]")
}

func TestEntryString(t *testing.T) {
	e := &Entry{Pass: 2, TaskID: "abc", Outcome: OutcomeOK, Latency: time.Microsecond * 10}
	assert.Equal(t, `#2 "abc" ok 10us -`, e.String())
}
