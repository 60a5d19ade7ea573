package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// ExecutionStats holds statistics about a generation run
type ExecutionStats struct {
	StartTime        time.Time
	EndTime          time.Time
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Duration returns the execution duration
func (s *ExecutionStats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// PrinterOption is a functional option for Printer
type PrinterOption func(*Printer)

// WithColor enables or disables color output
func WithColor(enabled bool) PrinterOption {
	return func(p *Printer) {
		p.colorEnabled = enabled
	}
}

// WithVerbose enables or disables verbose mode
func WithVerbose(verbose bool) PrinterOption {
	return func(p *Printer) {
		p.verbose = verbose
	}
}

// Printer writes progress output for the commit workflow
type Printer struct {
	writer       io.Writer
	colorEnabled bool
	verbose      bool
}

// NewPrinter creates a new Printer
func NewPrinter(writer io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{
		writer:       writer,
		colorEnabled: true,
		verbose:      false,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PrintStep prints a numbered workflow step
func (p *Printer) PrintStep(step int, message string) error {
	if p.colorEnabled {
		blue := color.New(color.FgBlue, color.Bold)
		_, err := blue.Fprintf(p.writer, "[%d] %s\n", step, message)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "[%d] %s\n", step, message)
	return err
}

// PrintProgress prints an in-progress status line
func (p *Printer) PrintProgress(message string) error {
	if !p.verbose {
		return nil
	}
	_, err := fmt.Fprintf(p.writer, "  %s\n", message)
	return err
}

// PrintSuccess prints a success line
func (p *Printer) PrintSuccess(message string) error {
	if p.colorEnabled {
		green := color.New(color.FgGreen)
		_, err := green.Fprintf(p.writer, "✓ %s\n", message)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "✓ %s\n", message)
	return err
}

// PrintError prints an error line
func (p *Printer) PrintError(message string) error {
	if p.colorEnabled {
		red := color.New(color.FgRed)
		_, err := red.Fprintf(p.writer, "✗ %s\n", message)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "✗ %s\n", message)
	return err
}

// PrintLLMContent prints streamed model output as it arrives
func (p *Printer) PrintLLMContent(content string) error {
	if p.colorEnabled {
		gray := color.New(color.FgHiBlack)
		_, err := gray.Fprint(p.writer, content)
		return err
	}
	_, err := fmt.Fprint(p.writer, content)
	return err
}

// Newline prints a newline
func (p *Printer) Newline() error {
	_, err := fmt.Fprintln(p.writer)
	return err
}

// PrintStats prints execution statistics
func (p *Printer) PrintStats(stats *ExecutionStats) error {
	if stats == nil {
		return nil
	}
	gray := fmt.Sprintf("Done in %.1fs", stats.Duration().Seconds())
	if stats.TotalTokens > 0 {
		gray += fmt.Sprintf(" (tokens: %d prompt + %d completion = %d total)",
			stats.PromptTokens, stats.CompletionTokens, stats.TotalTokens)
	}
	if p.colorEnabled {
		c := color.New(color.FgHiBlack)
		_, err := c.Fprintf(p.writer, "%s\n", gray)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "%s\n", gray)
	return err
}
