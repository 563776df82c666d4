package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// LogTrace reports sync progress as info events.
type LogTrace struct {
	log zerolog.Logger
}

func NewLogTrace(log zerolog.Logger) *LogTrace {
	return &LogTrace{log: log.With().Str("component", "trace").Logger()}
}

func (t *LogTrace) Output(msg string) {
	t.log.Info().Msg(msg)
}

func (t *LogTrace) Finished() {
	t.log.Info().Msg("finished")
}

// WriterTrace prints progress lines for an operator watching the CLI.
type WriterTrace struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriterTrace(out io.Writer) *WriterTrace {
	return &WriterTrace{out: out}
}

func (t *WriterTrace) Output(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, msg)
}

func (t *WriterTrace) Finished() {
	t.Output("... finished")
}
