package output

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kestfor/FiveWordCliques/internal/services/finder"
)

const (
	FormatTSV  = "tsv"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

type Config struct {
	Format string `yaml:"format"`
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case "", FormatTSV, FormatCSV, FormatJSON:
		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q", finder.ErrInvalidConfig, c.Format)
	}
}

// Writer writes one solution per line. Flush must be called once at the end.
type Writer interface {
	Write(solution finder.Solution) error
	Flush() error
}

func NewWriter(format string, w io.Writer) (Writer, error) {
	switch strings.ToLower(format) {
	case "", FormatTSV:
		return &tsvWriter{w: bufio.NewWriter(w)}, nil
	case FormatCSV:
		return &csvWriter{w: csv.NewWriter(w)}, nil
	case FormatJSON:
		bw := bufio.NewWriter(w)
		return &jsonWriter{w: bw, enc: json.NewEncoder(bw)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", finder.ErrInvalidConfig, format)
	}
}

// WriteAll writes every solution and flushes.
func WriteAll(w Writer, solutions []finder.Solution) error {
	for _, s := range solutions {
		if err := w.Write(s); err != nil {
			return err
		}
	}
	return w.Flush()
}

type tsvWriter struct {
	w *bufio.Writer
}

func (t *tsvWriter) Write(solution finder.Solution) error {
	_, err := t.w.WriteString(strings.Join(solution[:], "\t") + "\n")
	return err
}

func (t *tsvWriter) Flush() error {
	return t.w.Flush()
}

type csvWriter struct {
	w *csv.Writer
}

func (c *csvWriter) Write(solution finder.Solution) error {
	return c.w.Write(solution[:])
}

func (c *csvWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

type jsonWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

func (j *jsonWriter) Write(solution finder.Solution) error {
	return j.enc.Encode(solution)
}

func (j *jsonWriter) Flush() error {
	return j.w.Flush()
}
