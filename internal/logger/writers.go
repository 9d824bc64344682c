package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// consoleTimeFormat matches the "date time" stamp of classic unattended-script logs.
const consoleTimeFormat = "2006-01-02 15:04:05"

// WriterStrategy defines interface for creating log writers
type WriterStrategy interface {
	CreateWriter(output io.Writer) io.Writer
}

// JSONWriterStrategy writes zerolog's native JSON lines
type JSONWriterStrategy struct{}

// CreateWriter creates a JSON writer
func (jws *JSONWriterStrategy) CreateWriter(output io.Writer) io.Writer {
	return output
}

// ConsoleWriterStrategy creates human readable writers
type ConsoleWriterStrategy struct {
	NoColor bool
}

// CreateWriter creates a console writer
func (cws *ConsoleWriterStrategy) CreateWriter(output io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: consoleTimeFormat,
		NoColor:    cws.NoColor,
	}
}

// TextWriterStrategy creates plain one-line-per-event writers: timestamp,
// level, pid, message, then the remaining fields.
type TextWriterStrategy struct{}

// CreateWriter creates a text writer
func (tws *TextWriterStrategy) CreateWriter(output io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: consoleTimeFormat,
		NoColor:    true,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			"pid",
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{"pid"},
	}
}
