package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// step reports one stage of a command: loading a model, merging, writing it
// back, rendering. On a terminal a spinner runs next to the label until the
// step is done; otherwise only the outcome line is printed.
type step struct {
	w       io.Writer
	logger  *log.Logger
	parent  context.Context
	animate bool
	start   time.Time

	mu    sync.Mutex
	label string
	width int

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
}

// startStep starts a step on stderr.
func startStep(ctx context.Context, format string, args ...any) *step {
	return newStep(ctx, os.Stderr, isatty.IsTerminal(os.Stderr.Fd()), fmt.Sprintf(format, args...))
}

func newStep(ctx context.Context, w io.Writer, animate bool, label string) *step {
	sctx, cancel := context.WithCancel(ctx)
	s := &step{
		w:       w,
		logger:  loggerFromContext(ctx),
		parent:  ctx,
		animate: animate,
		start:   time.Now(),
		label:   label,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	if !animate {
		close(s.stopped)
		return s
	}
	go s.spin()
	return s
}

func (s *step) spin() {
	defer close(s.stopped)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			s.width = max(s.width, len(s.label))
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.label))
			s.mu.Unlock()
		}
	}
}

// update replaces the label while the step runs.
func (s *step) update(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = fmt.Sprintf(format, args...)
}

// stop halts the spinner and clears its line. Later calls do nothing.
func (s *step) stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
		if s.animate {
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+2))
			s.mu.Unlock()
		}
	})
}

// cancelled reports whether the command's context ended before the step.
func (s *step) cancelled() bool {
	return s.parent.Err() != nil
}

// done stops the step and prints its outcome: msg with the elapsed time when
// err is nil, otherwise the label marked as failed or cancelled. It returns
// err so callers can write `return st.done(err, "...")`.
func (s *step) done(err error, msg string) error {
	s.stop()
	elapsed := time.Since(s.start).Round(time.Millisecond)

	s.mu.Lock()
	label := s.label
	s.mu.Unlock()

	switch {
	case err == nil:
		fmt.Fprintf(s.w, "%s %s %s\n", styleIconSuccess.Render(iconSuccess), msg, StyleDim.Render("("+elapsed.String()+")"))
		s.logger.Debug(msg, "elapsed", elapsed)
	case s.cancelled():
		fmt.Fprintf(s.w, "%s %s cancelled\n", styleIconWarning.Render(iconWarning), label)
	default:
		fmt.Fprintf(s.w, "%s %s failed\n", styleIconError.Render(iconError), label)
		s.logger.Debug(label, "error", err, "elapsed", elapsed)
	}
	return err
}
