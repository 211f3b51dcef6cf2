// Package logger holds the process-wide zerolog logger shared by all
// wordprob components. The default writes human-readable console output;
// logging is silenced under `go test`.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()

	if strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// SetOutput redirects the global logger.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Set replaces the global logger.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable silences logging.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return logger
}
