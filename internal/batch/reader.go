package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/groundcheck/hallucination-agent/internal/models"
	"github.com/rs/zerolog"
)

// InputRecord is one parsed line of a JSONL input file. A malformed line
// carries the parse error instead of a request.
type InputRecord struct {
	Request    models.DetectionRequest
	Error      error
	LineNumber int
}

type Reader struct {
	src    io.Reader
	logger *zerolog.Logger
}

func NewReader(src io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		src:    src,
		logger: logger,
	}
}

// ReadAll streams the input line by line. Blank lines are skipped, line
// numbers count every line of the file including the skipped ones.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.src)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}
			if err := json.Unmarshal([]byte(line), &record.Request); err != nil {
				r.logger.Warn().Int("line", lineNumber).Err(err).Msg("Skipping malformed line")
				record.Error = err
			}

			select {
			case out <- record:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Msg("Failed to read input")
		}
	}()

	return out
}
