package cli

import (
	"io"

	"github.com/fatih/color"

	"github.com/NamanBalaji/payouts/internal/logger"
)

// colorNotifier prints workflow notifications as status lines.
type colorNotifier struct {
	out io.Writer
}

func (n colorNotifier) Success(msg string) {
	_, _ = color.New(color.FgGreen).Fprintf(n.out, "✓ %s\n", msg)
}

func (n colorNotifier) Error(msg string) {
	_, _ = color.New(color.FgRed).Fprintf(n.out, "✗ %s\n", msg)
}

// logNotifier records notifications that have no screen of their own.
type logNotifier struct{}

func (logNotifier) Success(msg string) { logger.Infof("%s", msg) }

func (logNotifier) Error(msg string) { logger.Errorf("%s", msg) }
