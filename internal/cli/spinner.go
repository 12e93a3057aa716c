// Package cli — spinner.go implements the progress animation shown while
// the engine's blocking mesh-generation call runs.
package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// spinnerFrames are the classic four-frame rotation.
var spinnerFrames = [...]byte{'|', '/', '-', '\\'}

// spinner animates a message on its own goroutine until stopped. It only
// ever writes to the terminal; it holds no reference to the engine or
// pipeline, and stopping it is a plain channel close plus a wait for the
// goroutine to clear the line.
type spinner struct {
	done chan struct{}
	wg   sync.WaitGroup
}

// startSpinner begins the animation on w. When w is not a terminal (CI,
// redirected stderr) it returns a no-op spinner so output stays clean.
func startSpinner(w io.Writer, msg string) *spinner {
	s := &spinner{done: make(chan struct{})}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return s
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-s.done:
				// Clear the animation line before handing the terminal back.
				fmt.Fprintf(w, "\r%*s\r", len(msg)+2, "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %c", msg, spinnerFrames[frame%len(spinnerFrames)])
				frame++
			}
		}
	}()
	return s
}

// Stop ends the animation and waits until the line is cleared. Safe to
// call on a spinner that never animated.
func (s *spinner) Stop() {
	close(s.done)
	s.wg.Wait()
}
