package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/twobody"
)

// DefaultColumns are the fields printed per step unless told otherwise.
var DefaultColumns = []string{"t", "x1", "y1", "x2", "y2"}

// LineSink is a sim.Observer writing one text line per kept step. Every field
// is formatted as %+.8f and fields are separated by a single space.
type LineSink struct {
	w       *bufio.Writer
	columns []string
	every   int
	seen    int
	buf     []byte
}

// NewLineSink prints the given columns (DefaultColumns when empty) of every
// every-th step. every < 1 is treated as 1.
func NewLineSink(w io.Writer, every int, columns ...string) (*LineSink, error) {
	if len(columns) == 0 {
		columns = DefaultColumns
	}
	for _, c := range columns {
		if !storage.IsColumn(c) {
			return nil, fmt.Errorf("report: unknown column %q", c)
		}
	}
	if every < 1 {
		every = 1
	}
	return &LineSink{
		w:       bufio.NewWriter(w),
		columns: append([]string(nil), columns...),
		every:   every,
	}, nil
}

func (l *LineSink) OnStep(t float64, s twobody.State) error {
	l.seen++
	if l.seen%l.every != 0 {
		return nil
	}

	l.buf = l.buf[:0]
	for i, c := range l.columns {
		if i > 0 {
			l.buf = append(l.buf, ' ')
		}
		l.buf = fmt.Appendf(l.buf, "%+.8f", storage.ColumnValue(c, t, s))
	}
	l.buf = append(l.buf, '\n')

	_, err := l.w.Write(l.buf)
	return err
}

// Flush writes any buffered lines. Call it once the run ends.
func (l *LineSink) Flush() error {
	return l.w.Flush()
}
