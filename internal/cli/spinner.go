package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// checkSpinner animates on w while lifelines are verified and shows how many
// have finished and which lifeline finished last. Update has the shape of
// verify.Progress, so the spinner can be handed to verify.Lifelines directly.
type checkSpinner struct {
	w     io.Writer
	label string
	ctx   context.Context

	done     chan struct{}
	stopped  chan struct{}
	started  bool
	stopOnce sync.Once

	mu      sync.Mutex
	checked int
	total   int
	last    string
	width   int
}

// newCheckSpinner returns a spinner for total lifelines. Cancelling ctx
// clears the line and ends the animation.
func newCheckSpinner(ctx context.Context, w io.Writer, label string, total int) *checkSpinner {
	return &checkSpinner{
		w:       w,
		label:   label,
		ctx:     ctx,
		total:   total,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *checkSpinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// Update records that lifeline id finished as the checked-th of total.
func (s *checkSpinner) Update(id string, checked, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last, s.checked, s.total = id, checked, total
}

// Checked returns how many lifelines have finished.
func (s *checkSpinner) Checked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checked
}

// status renders the progress text. The caller holds s.mu.
func (s *checkSpinner) status() string {
	if s.last == "" {
		return fmt.Sprintf("%s 0/%d", s.label, s.total)
	}
	return fmt.Sprintf("%s %d/%d %s", s.label, s.checked, s.total, s.last)
}

func (s *checkSpinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.status()
	s.width = max(s.width, lipgloss.Width(frame)+1+lipgloss.Width(line))
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(line))
}

// clear blanks the spinner line. Nothing is written if no frame was drawn.
func (s *checkSpinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	s.width = 0
}

// Stop ends the animation and clears the line. It is safe to call more
// than once and without Start.
func (s *checkSpinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.started {
			<-s.stopped
		}
		s.clear()
	})
}

// StopWithError stops the spinner and prints message as an error line.
func (s *checkSpinner) StopWithError(message string) {
	s.Stop()
	printError(s.w, "%s", message)
}

// Cancelled reports whether the spinner's context was cancelled.
func (s *checkSpinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
