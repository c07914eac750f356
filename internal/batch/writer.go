package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

type Writer interface {
	Write(result Result) error
	Close() error
}

func NewWriter(out io.Writer, format string, logger *zerolog.Logger) (Writer, error) {
	switch format {
	case "jsonl":
		return &jsonlWriter{encoder: json.NewEncoder(out)}, nil
	case "summary":
		return &summaryWriter{out: out, verdicts: map[string]int{}, logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

type outputLine struct {
	EventID            string  `json:"event_id"`
	Line               int     `json:"line"`
	Verdict            string  `json:"verdict,omitempty"`
	SimilarityScore    float64 `json:"similarity_score"`
	ContradictionFound bool    `json:"contradiction_found"`
	Reasoning          string  `json:"reasoning,omitempty"`
	Error              string  `json:"error,omitempty"`
}

type jsonlWriter struct {
	encoder *json.Encoder
}

func (w *jsonlWriter) Write(result Result) error {
	line := outputLine{
		EventID: result.EventID,
		Line:    result.LineNumber,
	}
	if result.Err != nil {
		line.Error = result.Err.Error()
	} else {
		line.Verdict = string(result.Record.Verdict)
		line.SimilarityScore = result.Record.SimilarityScore
		line.ContradictionFound = result.Record.ContradictionFound
		line.Reasoning = result.Record.Reasoning
	}
	return w.encoder.Encode(line)
}

func (w *jsonlWriter) Close() error {
	return nil
}

// summaryWriter tallies verdicts and emits a single JSON document on Close.
type summaryWriter struct {
	out      io.Writer
	total    int
	failed   int
	verdicts map[string]int
	logger   *zerolog.Logger
}

func (w *summaryWriter) Write(result Result) error {
	w.total++
	if result.Err != nil {
		w.failed++
		return nil
	}
	w.verdicts[string(result.Record.Verdict)]++
	return nil
}

func (w *summaryWriter) Close() error {
	summary := struct {
		Total    int            `json:"total"`
		Failed   int            `json:"failed"`
		Verdicts map[string]int `json:"verdicts"`
	}{
		Total:    w.total,
		Failed:   w.failed,
		Verdicts: w.verdicts,
	}

	encoder := json.NewEncoder(w.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}
