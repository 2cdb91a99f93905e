package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// TimeFormat is the timestamp layout of every log entry: RFC 3339 in UTC with
// milliseconds.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

const (
	roleField       = "role"
	traceGroupField = "trace_group"
)

// newConsoleWriter renders entries as
//
//	<time> <LEVEL> [<role>,<trace_id>,<span_id>,<parent_span_id>] <func>: <message> <fields>
//
// Entries without a trace carry "[<role>,]".
func newConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:          out,
		NoColor:      true,
		TimeFormat:   TimeFormat,
		TimeLocation: time.UTC,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			traceGroupField,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{
			roleField,
			TraceIDField,
			SpanIDField,
			ParentSpanIDField,
			traceGroupField,
		},
		FormatPrepare: prepareTraceGroup,
		FormatLevel: func(i any) string {
			s, _ := i.(string)
			return strings.ToUpper(s)
		},
		FormatCaller: func(i any) string {
			s, _ := i.(string)
			return s + ":"
		},
	}
}

func prepareTraceGroup(evt map[string]any) error {
	role := stringField(evt, roleField)

	if _, traced := evt[TraceIDField]; !traced {
		evt[traceGroupField] = fmt.Sprintf("[%s,]", role)
		return nil
	}

	evt[traceGroupField] = fmt.Sprintf("[%s,%s,%s,%s]",
		role,
		stringField(evt, TraceIDField),
		stringField(evt, SpanIDField),
		stringField(evt, ParentSpanIDField),
	)
	return nil
}

func stringField(evt map[string]any, name string) string {
	s, _ := evt[name].(string)
	return s
}
