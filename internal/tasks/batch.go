package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/coverwall/internal/models"
	"github.com/desertthunder/coverwall/internal/services"
	"github.com/desertthunder/coverwall/internal/shared"
)

// Batch retrieves every descriptor in a source list against one catalog.
type Batch struct {
	catalog    services.Catalog
	logger     *log.Logger
	retrievers map[models.SourceType]Retriever
}

// NewBatch creates a [Batch]. A nil logger falls back to the default logger.
func NewBatch(catalog services.Catalog, exec *Executor, logger *log.Logger) *Batch {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Batch{
		catalog:    catalog,
		logger:     logger,
		retrievers: NewRetrievers(exec),
	}
}

// Retrieve dispatches d to the retriever for its type.
func (b *Batch) Retrieve(ctx context.Context, d models.InputDescriptor) (*models.RetrievalResult, error) {
	r, ok := b.retrievers[d.Type]
	if !ok {
		return nil, unknownTypeError(d.Type)
	}
	return r.Retrieve(ctx, b.catalog, d)
}

// Run retrieves descriptors one at a time, in order.
//
// A failed descriptor does not stop the batch: every failure is prefixed with the
// descriptor's httpFriendlyShortName and joined into the returned error, and no results
// are returned. Cancelling ctx stops the batch before the next descriptor.
func (b *Batch) Run(ctx context.Context, descriptors []models.InputDescriptor, progress chan<- ProgressUpdate) ([]models.RetrievalResult, error) {
	results := make([]models.RetrievalResult, 0, len(descriptors))
	var errs []error
	total := len(descriptors)

	for i, d := range descriptors {
		step := i + 1
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("batch stopped before %s: %w", d.HTTPFriendlyShortName, err))
			break
		}

		logger := shared.WithLogger(b.logger, "source", d.HTTPFriendlyShortName, "type", string(d.Type))
		logger.Info("retrieving", "id", d.SourceID)
		b.sendProgress(progress, retrievingUpdate(step, total, d))

		result, err := b.Retrieve(ctx, d)
		if err != nil {
			logger.Error("retrieval failed", "error", err)
			b.sendProgress(progress, retrieveFailedUpdate(step, total, d, err))
			errs = append(errs, fmt.Errorf("%s: %w", d.HTTPFriendlyShortName, err))
			continue
		}

		logger.Info("retrieved", "name", result.ArtistLike.Name, "items", len(result.Items))
		b.sendProgress(progress, retrievedUpdate(step, total, result))
		results = append(results, *result)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return results, nil
}

// sendProgress sends a progress update through the channel without blocking.
func (b *Batch) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
