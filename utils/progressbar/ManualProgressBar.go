// Package progressbar implements functionality of printing a progress
// bar to a terminal
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ManualProgressBar implement progress bar functionality that must
// be manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be written.
//
// Each call to Display writes one full line. ManualProgressBar is meant
// to write to a live-updating writer such as a uilive.Writer, which
// replaces the previously written line.
//
// ManualProgressBar does not use concurrency.
type ManualProgressBar struct {
	out             io.Writer
	width           float64
	maxProgress     float64
	currentProgress float64
	description     string
	bar             strings.Builder
	startTime       time.Time
}

// NewManualProgressBar returns a new ManualProgressBar that is width
// characters wide and reaches 100% after max calls to Increment. If max
// is not positive, only the progress count is displayed.
func NewManualProgressBar(out io.Writer, width, max int) *ManualProgressBar {
	return &ManualProgressBar{
		out:             out,
		width:           float64(width),
		maxProgress:     float64(max),
		currentProgress: 0,
		startTime:       time.Now(),
	}
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ManualProgressBar) Increment() {
	if p.maxProgress <= 0 || p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Progress returns the number of calls to Increment so far
func (p *ManualProgressBar) Progress() int {
	return int(p.currentProgress)
}

// Describe sets a description displayed after the bar
func (p *ManualProgressBar) Describe(format string, args ...interface{}) {
	p.description = fmt.Sprintf(format, args...)
}

// String returns the current progress bar line
func (p *ManualProgressBar) String() string {
	p.bar.Reset()
	elapsed := time.Since(p.startTime).Truncate(time.Second)

	if p.maxProgress <= 0 {
		p.bar.WriteString(fmt.Sprintf("[%v | elapsed: %v]",
			p.currentProgress, elapsed))
	} else {
		width := int(p.width)
		filled := int(p.currentProgress / p.maxProgress * p.width)
		p.bar.WriteString("|")
		p.bar.WriteString(strings.Repeat("█", filled))
		p.bar.WriteString(strings.Repeat(" ", width-filled))
		p.bar.WriteString(fmt.Sprintf("| [%.2f%v | elapsed: %v]",
			p.currentProgress/p.maxProgress*100, "%", elapsed))
	}

	if p.description != "" {
		p.bar.WriteString(" ")
		p.bar.WriteString(p.description)
	}
	return p.bar.String()
}

// Display writes the progress bar line
func (p *ManualProgressBar) Display() error {
	_, err := fmt.Fprintln(p.out, p.String())
	return err
}
