package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

type lineResult struct {
	line string
	err  error
}

// LineReader reads lines from a stream in the background so that a caller
// waiting for input can give up when its context is cancelled. At most one
// line is read ahead of the caller.
type LineReader struct {
	r     *bufio.Reader
	once  sync.Once
	lines chan lineResult
}

// NewLineReader returns a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		r:     bufio.NewReader(r),
		lines: make(chan lineResult),
	}
}

func (l *LineReader) start() {
	go func() {
		defer close(l.lines)
		for {
			line, err := l.r.ReadString('\n')
			l.lines <- lineResult{line: line, err: err}
			if err != nil {
				return
			}
		}
	}()
}

// ReadLine returns the next line without its line ending. A last line with
// no newline is returned normally; io.EOF comes after it. If ctx is done
// first, ReadLine returns ctx.Err() and the pending line is kept for the
// next call.
func (l *LineReader) ReadLine(ctx context.Context) (string, error) {
	l.once.Do(l.start)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-l.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil && !(errors.Is(res.err, io.EOF) && res.line != "") {
			return "", res.err
		}
		return strings.TrimRight(res.line, "\r\n"), nil
	}
}
