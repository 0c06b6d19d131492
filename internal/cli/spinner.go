package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const spinnerInterval = 90 * time.Millisecond

var spinnerFrames = []string{"⠷", "⠯", "⠟", "⠻", "⠽", "⠾"}

// Spinner is a single-line activity indicator for long translate runs. It
// stops on demand or when its context is cancelled, clearing the line
// either way.
type Spinner struct {
	message string
	out     io.Writer

	// ctx is the caller's context; cancelling it aborts the render loop.
	ctx  context.Context
	quit chan struct{}
	idle chan struct{} // closed once the render loop has exited
	stop sync.Once
	mu   sync.Mutex
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{
		message: message,
		out:     os.Stderr,
		ctx:     ctx,
		quit:    make(chan struct{}),
		idle:    make(chan struct{}),
	}
}

// Start launches the render loop.
func (s *Spinner) Start() {
	go func() {
		defer close(s.idle)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.quit:
				return
			case <-ticker.C:
				s.render(spinnerFrames[frame%len(spinnerFrames)])
			}
		}
	}()
}

// Stop halts the render loop and clears the line. Safe to call more than
// once.
func (s *Spinner) Stop() {
	s.stop.Do(func() { close(s.quit) })
	<-s.idle
	s.clearLine()
}

// StopWithError stops the spinner and prints an error line in its place.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the caller's context ended the spinner rather
// than an explicit Stop.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

func (s *Spinner) render(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
