package batch

import (
	"context"
	"sync"

	"github.com/groundcheck/hallucination-agent/internal/detector"
	"github.com/groundcheck/hallucination-agent/internal/models"
	"github.com/rs/zerolog"
)

// Result is the outcome of one batch record. Err is set for records that
// failed to parse or to evaluate; such records never carry a verdict.
type Result struct {
	EventID    string
	LineNumber int
	Record     models.VerdictRecord
	Err        error
}

type Processor struct {
	evaluator detector.Evaluator
	defaults  models.DetectionConfig
	workers   int
	logger    *zerolog.Logger
}

func NewProcessor(evaluator detector.Evaluator, defaults models.DetectionConfig, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		evaluator: evaluator,
		defaults:  defaults,
		workers:   workers,
		logger:    logger,
	}
}

// Process evaluates records with a fixed-size worker pool and streams
// results as they complete. Result order is not the input order.
func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan Result {
	jobs := make(chan InputRecord)
	out := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				result := p.evaluate(ctx, record)
				select {
				case out <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case jobs <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func (p *Processor) evaluate(ctx context.Context, record InputRecord) Result {
	result := Result{
		EventID:    record.Request.EventID,
		LineNumber: record.LineNumber,
	}

	if record.Error != nil {
		result.Err = record.Error
		return result
	}

	cfg := p.defaults
	if record.Request.Config != nil {
		cfg = *record.Request.Config
	}

	verdict, err := p.evaluator.Evaluate(ctx, record.Request.Input(), cfg)
	if err != nil {
		p.logger.Error().
			Err(err).
			Int("line", record.LineNumber).
			Str("event_id", record.Request.EventID).
			Msg("Evaluation failed")
		result.Err = err
		return result
	}

	result.Record = verdict
	return result
}
