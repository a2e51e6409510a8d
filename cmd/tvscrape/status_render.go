package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"tvscrape/internal/scrape"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func levelColor(level scrape.LogLevel) string {
	switch level {
	case scrape.LevelSuccess:
		return ansiGreen
	case scrape.LevelWarning:
		return ansiYellow
	case scrape.LevelError:
		return ansiRed
	default:
		return ansiBlue
	}
}

// renderStepLog formats an ordered ScrapeLogStep list for terminal display,
// one indented line per log entry, marking the step that stopped the
// pipeline with a failure marker instead of a checkmark.
func renderStepLog(steps []scrape.ScrapeLogStep, colorize bool) string {
	var b strings.Builder
	for _, step := range steps {
		marker := "✓"
		if !step.Completed {
			marker = "✗"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, step.Name)
		for _, entry := range step.Logs {
			line := fmt.Sprintf("    [%s] %s", strings.ToUpper(string(entry.Level)), entry.Message)
			if colorize {
				line = levelColor(entry.Level) + line + ansiReset
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
