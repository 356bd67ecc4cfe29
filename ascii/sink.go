package ascii

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const rowSeparator = '\n'

// ErrSinkState is returned when a Sink method is called in the wrong phase.
var ErrSinkState = errors.New("sink used outside of its lifecycle")

// Sink receives the characters of an image in row-major order. Start is
// called once before the first Add and End once after the last one.
type Sink interface {
	Start() error
	Add(row, col int, ch rune) error
	End() error
}

type phase int

const (
	notStarted phase = iota
	started
	ended
)

func (p phase) String() string {
	switch p {
	case notStarted:
		return "not started"
	case started:
		return "started"
	case ended:
		return "ended"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// lifecycle tracks the sink phase shared by all implementations.
type lifecycle struct {
	phase phase
}

func (l *lifecycle) start() error {
	if l.phase != notStarted {
		return fmt.Errorf("start: %w (%s)", ErrSinkState, l.phase)
	}
	l.phase = started
	return nil
}

func (l *lifecycle) add() error {
	if l.phase != started {
		return fmt.Errorf("add: %w (%s)", ErrSinkState, l.phase)
	}
	return nil
}

func (l *lifecycle) end() error {
	if l.phase != started {
		return fmt.Errorf("end: %w (%s)", ErrSinkState, l.phase)
	}
	l.phase = ended
	return nil
}

// ConsoleSink writes every character as soon as it is added. The row
// separator goes out when the first character of the next row arrives, so
// the last row is not followed by one.
type ConsoleSink struct {
	lifecycle
	w       io.Writer
	written bool
	buf     [utf8.UTFMax + 1]byte
}

var _ Sink = &ConsoleSink{}

// NewConsoleSink returns a sink writing straight to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (s *ConsoleSink) Start() error {
	return s.start()
}

func (s *ConsoleSink) Add(row, col int, ch rune) error {
	if err := s.add(); err != nil {
		return err
	}

	b := s.buf[:0]
	if col == 0 && s.written {
		b = append(b, rowSeparator)
	}
	b = utf8.AppendRune(b, ch)

	if _, err := s.w.Write(b); err != nil {
		return fmt.Errorf("could not write character at row %d, column %d: %w", row, col, err)
	}
	s.written = true
	return nil
}

func (s *ConsoleSink) End() error {
	return s.end()
}

// BufferedSink collects the whole grid in memory and hands it to the
// underlying writer in a single Write from End.
type BufferedSink struct {
	lifecycle
	w    io.Writer
	size int
	text strings.Builder
}

var _ Sink = &BufferedSink{}

// NewBufferedSink reserves room for width*height characters plus one
// separator per row.
func NewBufferedSink(w io.Writer, width, height int) *BufferedSink {
	return &BufferedSink{
		w:    w,
		size: max(width*height+height, 0),
	}
}

func (s *BufferedSink) Start() error {
	if err := s.start(); err != nil {
		return err
	}
	s.text.Reset()
	s.text.Grow(s.size)
	return nil
}

func (s *BufferedSink) Add(_, col int, ch rune) error {
	if err := s.add(); err != nil {
		return err
	}

	if col == 0 && s.text.Len() > 0 {
		s.text.WriteByte(rowSeparator)
	}
	s.text.WriteRune(ch)
	return nil
}

func (s *BufferedSink) End() error {
	if err := s.end(); err != nil {
		return err
	}
	return s.flush()
}

func (s *BufferedSink) flush() error {
	b := []byte(s.text.String())
	n, err := s.w.Write(b)
	if err != nil {
		return fmt.Errorf("could not write buffer: %w", err)
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}
	return nil
}
