package logger

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// TextFormatter renders one line per entry:
//
//	2024-05-01 18:00:00 WARN [service.go:97 Snapshot] market-data: Primary fetch failed | error=...
//
// The component field, when present, prefixes the message instead of being
// listed with the other fields, which are sorted by key.
type TextFormatter struct {
	TimestampFormat string
	Colors          bool
}

// Format renders a single log entry
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	f.paint(&b, colorGray, entry.Time.Format(f.TimestampFormat))
	b.WriteByte(' ')
	f.paint(&b, levelColor(entry.Level), strings.ToUpper(entry.Level.String()))

	if entry.HasCaller() {
		fmt.Fprintf(&b, " [%s]", formatCaller(entry.Caller))
	}

	b.WriteByte(' ')
	if component, ok := entry.Data["component"]; ok {
		fmt.Fprintf(&b, "%v: ", component)
	}
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != "component" {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		sort.Strings(keys)
		b.WriteString(" |")
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
		}
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func (f *TextFormatter) paint(b *strings.Builder, color, s string) {
	if !f.Colors {
		b.WriteString(s)
		return
	}
	b.WriteString(color)
	b.WriteString(s)
	b.WriteString(colorReset)
}

// levelColor returns ANSI color code for log level
func levelColor(level logrus.Level) string {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return colorCyan
	case logrus.InfoLevel:
		return colorGreen
	case logrus.WarnLevel:
		return colorYellow
	case logrus.ErrorLevel:
		return colorRed
	case logrus.FatalLevel, logrus.PanicLevel:
		return colorMagenta
	default:
		return colorReset
	}
}

func formatCaller(caller *runtime.Frame) string {
	_, file := filepath.Split(caller.File)

	funcName := caller.Function
	if idx := strings.LastIndex(funcName, "."); idx >= 0 {
		funcName = funcName[idx+1:]
	}

	return fmt.Sprintf("%s:%d %s", file, caller.Line, funcName)
}
