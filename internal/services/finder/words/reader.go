package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/kestfor/FiveWordCliques/internal/services/finder"
)

// MaxLineBytes bounds a single line. Longer lines can never be candidates and are dropped.
const MaxLineBytes = 4 << 10

// ReadLines reads r to the end. Overlong lines are skipped, a read failure
// discards everything read so far.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string

	br := bufio.NewReader(r)
	buf := make([]byte, 0, 64)
	long := false

	for {
		chunk, isPrefix, err := br.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", finder.ErrUnreadableInput, err)
		}

		if !long {
			buf = append(buf, chunk...)
			if len(buf) > MaxLineBytes {
				long = true
			}
		}

		if isPrefix {
			continue
		}

		if long {
			slog.Debug("overlong line skipped", slog.Int("line", len(lines)+1))
		} else {
			lines = append(lines, string(buf))
		}

		buf = buf[:0]
		long = false
	}

	return lines, nil
}
