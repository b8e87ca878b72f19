// Package inventory retrieves the full client inventory from the
// management server's paged listing endpoint.
package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/endpointops/clientsweep/internal/models"
)

// Lister is the single page-retrieval operation the fetcher needs.
type Lister interface {
	ListPage(ctx context.Context, pageIndex, pageSize int) (*models.Page, error)
}

// Fetcher accumulates inventory pages into one ordered sequence.
type Fetcher struct {
	lister   Lister
	pageSize int
}

// New creates a fetcher that requests pages of the given size.
func New(lister Lister, pageSize int) *Fetcher {
	return &Fetcher{lister: lister, pageSize: pageSize}
}

// FetchAll retrieves every inventory page, in increasing 1-based page
// order, until the accumulated count reaches the server-reported total.
// An empty first page terminates cleanly with an empty inventory. Any
// page failure aborts the whole fetch: grouping against a partial
// inventory would propose wrong deletions.
func (f *Fetcher) FetchAll(ctx context.Context) ([]models.ClientRecord, error) {
	var records []models.ClientRecord
	pageIndex := 1

	for {
		page, err := f.lister.ListPage(ctx, pageIndex, f.pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", pageIndex, err)
		}

		records = append(records, page.Content...)
		slog.Debug("fetched inventory page",
			slog.Int("page", pageIndex),
			slog.Int("records", len(page.Content)),
			slog.Int("accumulated", len(records)),
			slog.Int("total", page.TotalElements),
		)

		if len(page.Content) == 0 {
			break
		}
		if len(records) >= page.TotalElements {
			break
		}
		pageIndex++
	}

	return records, nil
}
