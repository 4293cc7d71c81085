package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/yourusername/ytchannel-go/internal/domain"
)

// clearLine moves the cursor to column 0 and erases the line.
const clearLine = "\r\033[K"

// Options configures a Reporter
type Options struct {
	// Interactive enables in-place updates of intermediate percentages.
	// Non-interactive output only gets the size and Done lines.
	Interactive bool
	// Limiter throttles intermediate updates; nil renders every event.
	Limiter *rate.Limiter
}

// Reporter owns the terminal status line. All writes go through its mutex so
// concurrent tracks never interleave characters.
type Reporter struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	limiter     *rate.Limiter
	done        map[domain.TrackKind]bool
	pending     bool // an in-place line is on screen without a trailing newline
}

// New creates a reporter writing to out
func New(out io.Writer, opts Options) *Reporter {
	return &Reporter{
		out:         out,
		interactive: opts.Interactive,
		limiter:     opts.Limiter,
		done:        make(map[domain.TrackKind]bool),
	}
}

// NewTerminal creates a reporter for a console file, enabling in-place updates
// only when the file is a terminal.
func NewTerminal(out *os.File, interval time.Duration) *Reporter {
	opts := Options{Interactive: term.IsTerminal(int(out.Fd()))}
	if interval > 0 {
		opts.Limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return New(out, opts)
}

// Begin announces a new acquisition for kind and prints its size
func (r *Reporter) Begin(kind domain.TrackKind, total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.done[kind] = false
	size := "unknown"
	if total > 0 {
		size = FormatSize(total)
	}
	r.writeLine(fmt.Sprintf("\t%s size: %s", kind.Label(), size))
}

// Progress renders the cumulative state of kind. The Done line is written
// once per acquisition; unknown totals render nothing.
func (r *Reporter) Progress(kind domain.TrackKind, state domain.ProgressState) {
	line := RenderLine(kind, state)
	if line == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if state.Complete() {
		if r.done[kind] {
			return
		}
		r.done[kind] = true
		r.writeLine(line)
		return
	}

	if !r.interactive {
		return
	}
	if r.limiter != nil && !r.limiter.Allow() {
		return
	}
	fmt.Fprint(r.out, clearLine+line)
	r.pending = true
}

// Write lets log output share the console with the status line. A pending
// in-place line is erased before p is written.
func (r *Reporter) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending {
		fmt.Fprint(r.out, clearLine)
		r.pending = false
	}
	return r.out.Write(p)
}

// Sync satisfies zapcore.WriteSyncer
func (r *Reporter) Sync() error {
	return nil
}

// writeLine replaces any in-place line with a full line. Caller holds mu.
func (r *Reporter) writeLine(line string) {
	if r.pending {
		fmt.Fprint(r.out, clearLine)
		r.pending = false
	}
	fmt.Fprintln(r.out, line)
}

var _ domain.ProgressListener = (*Reporter)(nil)
