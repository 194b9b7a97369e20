// Package logging builds the zerolog logger used for diagnostics. User
// facing output does not go through it.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w at the given level. Unknown
// levels are an error.
func New(w io.Writer, level string, noColor bool) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	output := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      noColor,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(output).Level(lvl), nil
}

// ParseLevel maps a level name to a zerolog level. On top of the names
// zerolog knows it accepts warning, off and none. The empty string is info.
func ParseLevel(raw string) (zerolog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	switch name {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	case "off", "none":
		return zerolog.Disabled, nil
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q (expected trace, debug, info, warn, error, or disabled)", raw)
	}
	return lvl, nil
}
