package install

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// progressWriter wraps an io.Writer and prints download progress to
// stdout while bytes flow through it.
type progressWriter struct {
	writer     io.Writer
	total      int64
	current    int64
	startTime  time.Time
	lastUpdate time.Time
}

func newProgressWriter(w io.Writer, total int64) *progressWriter {
	now := time.Now()
	return &progressWriter{writer: w, total: total, startTime: now, lastUpdate: now}
}

// Write implements io.Writer and updates the display at most every
// 100ms to avoid flickering.
func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	if err != nil {
		return n, err
	}

	pw.current += int64(n)
	if time.Since(pw.lastUpdate) >= 100*time.Millisecond {
		pw.display()
		pw.lastUpdate = time.Now()
	}
	return n, nil
}

func (pw *progressWriter) display() {
	if pw.total > 0 {
		percent := float64(pw.current) / float64(pw.total) * 100
		fmt.Printf("\r%5.1f%% %s/%s   ", percent, formatBytes(pw.current), formatBytes(pw.total))
	} else {
		fmt.Printf("\r%s downloaded   ", formatBytes(pw.current))
	}
}

func (pw *progressWriter) finish() {
	elapsed := time.Since(pw.startTime)
	fmt.Printf("\r%s\r", strings.Repeat(" ", 60))
	fmt.Printf("Downloaded %s in %s\n", formatBytes(pw.current), formatDuration(elapsed))
}

// copyWithProgress copies src to dst while displaying progress; total
// may be -1 when the content length is unknown.
func copyWithProgress(dst io.Writer, src io.Reader, total int64) error {
	pw := newProgressWriter(dst, total)
	_, err := io.Copy(pw, src)
	pw.finish()
	return err
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
