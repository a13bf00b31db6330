package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/coverwall/internal/services"
	"github.com/desertthunder/coverwall/internal/shared"
)

// maxPageFetches bounds pagination regardless of what the API reports.
const maxPageFetches = 10_000

// PageFunc fetches the page that follows page.
type PageFunc[T any] func(ctx context.Context, page *services.Page[T]) (*services.Page[T], error)

// CollectAll drains a paginated result starting at first and returns every item in
// page order. Each follow-up fetch goes through ex.
//
// Collection stops when a page has no next cursor, when the collected count reaches
// the reported total, or when a page comes back empty. Fetching more than
// ceil(total/limit)+1 pages in all, or [maxPageFetches] follow-ups when the first page
// reports no total or limit, is treated as a runaway cursor and fails.
func CollectAll[T any](ctx context.Context, ex *Executor, first *services.Page[T], next PageFunc[T]) ([]T, error) {
	if first == nil {
		return []T{}, nil
	}

	items := make([]T, 0, len(first.Items))
	items = append(items, first.Items...)

	ceiling := followUpCeiling(first)
	page := first
	for fetches := 0; page.HasNext(); fetches++ {
		if first.Total > 0 && len(items) >= first.Total {
			break
		}
		if fetches >= ceiling {
			return nil, fmt.Errorf("%w: pagination did not terminate after %d pages", shared.ErrAPIRequest, fetches+1)
		}

		current := page
		following, err := Execute(ctx, ex, func(ctx context.Context) (*services.Page[T], error) {
			return next(ctx, current)
		})
		if err != nil {
			if errors.Is(err, services.ErrNoMorePages) {
				break
			}
			return nil, fmt.Errorf("failed to fetch page after offset %d: %w", current.Offset, err)
		}
		if following == nil || len(following.Items) == 0 {
			break
		}

		items = append(items, following.Items...)
		page = following
	}

	return items, nil
}

// followUpCeiling returns how many pages may be fetched after first.
func followUpCeiling[T any](first *services.Page[T]) int {
	if first.Total <= 0 || first.Limit <= 0 {
		return maxPageFetches
	}
	return min((first.Total+first.Limit-1)/first.Limit, maxPageFetches)
}
