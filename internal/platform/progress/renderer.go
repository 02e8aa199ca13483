package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
)

const barWidth = 30

// Renderer draws a single in-place progress line for a long-running batch.
// Render overwrites the current line with a carriage return; Finish moves to
// the next line once the batch is over. Not safe for concurrent use.
type Renderer struct {
	out      io.Writer
	rendered bool
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render draws `[#####.....] 42% (21/50) 1m3s elapsed, ~1m27s left`.
func (r *Renderer) Render(current, total int, elapsed, remaining time.Duration) {
	if r.out == nil || total <= 0 {
		return
	}

	filled := current * barWidth / total
	if filled > barWidth {
		filled = barWidth
	}
	percent := current * 100 / total

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_ = buf.WriteByte('\r')
	_ = buf.WriteByte('[')
	_, _ = buf.WriteString(strings.Repeat("#", filled))
	_, _ = buf.WriteString(strings.Repeat(".", barWidth-filled))
	_ = buf.WriteByte(']')
	_, _ = fmt.Fprintf(buf, " %3d%% (%d/%d) %s elapsed, ~%s left",
		percent,
		current, total,
		elapsed.Round(time.Second),
		remaining.Round(time.Second),
	)

	_, _ = r.out.Write(buf.Bytes())
	r.rendered = true
}

// Finish terminates the progress line so subsequent output starts clean.
func (r *Renderer) Finish() {
	if r.out == nil || !r.rendered {
		return
	}
	_, _ = io.WriteString(r.out, "\n")
	r.rendered = false
}
