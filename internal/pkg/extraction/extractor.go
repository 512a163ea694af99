package extraction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
)

// Generator sends a prompt plus a document to a generative model and returns its text reply.
type Generator interface {
	Generate(ctx context.Context, prompt string, doc Document) (string, error)
}

// Extractor produces fresh topics from a syllabus document. It persists nothing.
type Extractor struct {
	generator Generator
	timeout   time.Duration
	logger    zerolog.Logger
	newID     func() string
}

// NewExtractor creates an Extractor. A zero timeout leaves only the caller's deadline.
func NewExtractor(generator Generator, timeout time.Duration, logger zerolog.Logger) *Extractor {
	return &Extractor{
		generator: generator,
		timeout:   timeout,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// Extract runs the model and returns topics with new unique ids, the title as
// description and completion cleared.
func (e *Extractor) Extract(ctx context.Context, req Request) ([]models.Topic, error) {
	if len(req.Document.Data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrGeneration)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(req)
	started := time.Now()
	reply, err := e.generator.Generate(ctx, prompt, req.Document)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			e.logger.Warn().Dur("elapsed", time.Since(started)).Msg("Syllabus extraction timed out")
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	topics, err := ParseResponse(reply)
	if err != nil {
		e.logger.Warn().Err(err).Int("replyLength", len(reply)).Msg("Unusable extraction reply")
		return nil, err
	}

	for i := range topics {
		topics[i].TopicID = e.newID()
		topics[i].Description = topics[i].Title
		topics[i].IsCompleted = false
	}

	e.logger.Info().
		Str("document", req.Document.Name).
		Int("topics", len(topics)).
		Dur("elapsed", time.Since(started)).
		Msg("Syllabus extracted")
	return topics, nil
}
