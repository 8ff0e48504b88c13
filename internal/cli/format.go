package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

// PrintInfo prints a progress line.
func PrintInfo(format string, args ...any) {
	_, _ = infoColor.Printf(format+"\n", args...)
}

// PrintSuccess prints a success message with a checkmark.
func PrintSuccess(format string, args ...any) {
	_, _ = successColor.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message to stderr.
func PrintError(err error) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", err)
}

// Printf mirrors fmt.Printf for uncolored output.
func Printf(format string, args ...any) {
	fmt.Printf(format, args...)
}
