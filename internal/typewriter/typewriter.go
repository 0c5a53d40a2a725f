// Package typewriter prints finished text one character at a time.
package typewriter

import (
	"io"
	"time"
)

const DefaultDelay = 30 * time.Millisecond

type flusher interface {
	Flush() error
}

type Renderer struct {
	writer io.Writer
	delay  time.Duration
	sleep  func(time.Duration)
}

type Option func(*Renderer)

func WithDelay(delay time.Duration) Option {
	return func(r *Renderer) {
		r.delay = delay
	}
}

// WithSleep replaces time.Sleep, mostly for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(r *Renderer) {
		r.sleep = sleep
	}
}

func New(writer io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		writer: writer,
		delay:  DefaultDelay,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Delay() time.Duration {
	return r.delay
}

// Render writes text rune by rune, pausing after each one, then ends the line.
// Write errors are ignored.
func (r *Renderer) Render(text string) {
	for _, ch := range text {
		_, _ = io.WriteString(r.writer, string(ch))
		r.flush()
		if r.delay > 0 {
			r.sleep(r.delay)
		}
	}
	_, _ = io.WriteString(r.writer, "\n")
	r.flush()
}

// flush pushes buffered output so every character appears immediately.
// *os.File is unbuffered and needs nothing.
func (r *Renderer) flush() {
	if w, ok := r.writer.(flusher); ok {
		_ = w.Flush()
	}
}
