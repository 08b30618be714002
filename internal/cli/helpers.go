package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/aretw0/nous/internal/logging"
)

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout game UI).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether stdout is an interactive terminal, which gates
// the banner and markdown rendering.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// prompt reads one trimmed, lowercased line from the scanner.
func prompt(scanner *bufio.Scanner, label string) (string, bool) {
	fmt.Printf("%s> ", label)
	if !scanner.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(scanner.Text())), true
}
