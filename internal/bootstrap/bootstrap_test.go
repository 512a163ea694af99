package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type recordingTrigger struct {
	names []string
	err   error
}

func (r *recordingTrigger) Trigger(_ context.Context, name string) error {
	r.names = append(r.names, name)
	return r.err
}

func TestRunStartupSweep(t *testing.T) {
	jobs := &recordingTrigger{}
	RunStartupSweep(jobs, zerolog.Nop())
	assert.Equal(t, []string{DeadlineSweepJob}, jobs.names)
}

func TestRunStartupSweepLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	jobs := &recordingTrigger{err: errors.New("lock backend down")}

	RunStartupSweep(jobs, zerolog.New(&buf))

	assert.Contains(t, buf.String(), "Startup sweep failed")
	assert.Contains(t, buf.String(), "lock backend down")
}
