package logger

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// ConsoleTimestampLayout matches clock.TimestampLayout.
const ConsoleTimestampLayout = "2006-01-02 15:04:05"

// ConsoleFormatter renders human-readable lines:
//
//	[2006-01-02 15:04:05] message key=value
//
// Fields are sorted by key. Warnings and errors are prefixed with their level.
type ConsoleFormatter struct {
	// HideFields drops the trailing key=value pairs.
	HideFields bool
}

// Format implements logrus.Formatter.
func (f *ConsoleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("[")
	b.WriteString(entry.Time.Format(ConsoleTimestampLayout))
	b.WriteString("] ")

	switch entry.Level {
	case logrus.WarnLevel, logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		b.WriteString(strings.ToUpper(entry.Level.String()))
		b.WriteString(": ")
	case logrus.DebugLevel, logrus.TraceLevel:
		b.WriteString("debug: ")
	}
	b.WriteString(entry.Message)

	if !f.HideFields && len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%s", k, formatValue(entry.Data[k]))
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func formatValue(v interface{}) string {
	var s string
	switch val := v.(type) {
	case error:
		s = val.Error()
	case fmt.Stringer:
		s = val.String()
	default:
		s = fmt.Sprint(val)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
