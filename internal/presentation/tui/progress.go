package tui

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/schollz/progressbar/v3"
)

var _ ports.ProgressSink = (*Progress)(nil)

var barTheme = progressbar.OptionSetTheme(progressbar.Theme{
	Saucer:        "=",
	SaucerHead:    ">",
	SaucerPadding: " ",
	BarStart:      "[",
	BarEnd:        "]",
})

// Progress shows build progress as a progress bar, one bar per build.
type Progress struct {
	mu       sync.Mutex
	w        io.Writer
	describe string
	width    int
	logger   *slog.Logger

	bar   *progressbar.ProgressBar
	total int
}

// NewProgress creates a progress sink writing to w.
func NewProgress(w io.Writer, describe string, logger *slog.Logger) *Progress {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Progress{w: w, describe: describe, width: 40, logger: logger}
}

func (p *Progress) PublishProgress(current, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total <= 0 {
		return
	}
	if p.bar == nil || current == 1 || total != p.total {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetWidth(p.width),
			progressbar.OptionSetDescription(p.describe),
			progressbar.OptionShowCount(),
			barTheme,
		)
		p.total = total
	}

	if err := p.bar.Set(current); err != nil {
		p.logger.Error("failed to advance progress bar", "current", current, "total", total, "error", err)
		return
	}
	if current == total {
		_ = p.bar.Finish()
		fmt.Fprintln(p.w)
		p.bar = nil
	}
}
