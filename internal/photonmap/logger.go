package photonmap

import (
	"fmt"
	"sync/atomic"
)

// Logger receives progress lines from the pipeline stages.
type Logger interface {
	Printf(format string, args ...interface{})
}

type stdoutLogger struct{}

func (stdoutLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// DefaultLogger prints to stdout.
var DefaultLogger Logger = stdoutLogger{}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// NopLogger discards everything; handy in tests.
var NopLogger Logger = nopLogger{}

// progress prints "[tag] x%" roughly every 1% of total.
type progress struct {
	log   Logger
	tag   string
	total int64
	step  int64
	done  int64 // atomic
}

func newProgress(log Logger, tag string, total int) *progress {
	if log == nil {
		log = NopLogger
	}
	step := int64(1)
	if total >= 100 {
		step = int64(total / 100) // ~1%
	}
	return &progress{log: log, tag: tag, total: int64(total), step: step}
}

// add is safe for concurrent use.
func (p *progress) add(n int64) {
	if p.total <= 0 || n <= 0 {
		return
	}
	done := atomic.AddInt64(&p.done, n)
	if (done-n)/p.step != done/p.step {
		p.log.Printf("[%s] %.2f%%\n", p.tag, Real(done)*100/Real(p.total))
	}
}
