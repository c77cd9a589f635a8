package service

import (
	"context"
	"sync"
)

// TextBatchItem pairs one batch entry's outcome with its request index.
// Exactly one of Result and Err is set.
type TextBatchItem struct {
	Index  int
	Result *TextResult
	Err    error
}

// TableBatchItem pairs one table batch entry's outcome with its request index.
type TableBatchItem struct {
	Index  int
	Result *TableResult
	Err    error
}

// GenerateTextBatch resolves a set of independent text generations. With
// parallel=true all items are dispatched concurrently and results are
// matched back to requests by index; otherwise items run in submission
// order. One item's failure never aborts its siblings. When parallel items
// share a presentation ID, the final history order is whichever completion
// order occurred.
func (s *ContentService) GenerateTextBatch(ctx context.Context, reqs []TextRequest, parallel bool) []TextBatchItem {
	items := make([]TextBatchItem, len(reqs))

	if parallel {
		var wg sync.WaitGroup
		for i, req := range reqs {
			wg.Add(1)
			go func(i int, req TextRequest) {
				defer wg.Done()
				result, err := s.GenerateText(ctx, req)
				items[i] = TextBatchItem{Index: i, Result: result, Err: err}
			}(i, req)
		}
		wg.Wait()
		return items
	}

	for i, req := range reqs {
		result, err := s.GenerateText(ctx, req)
		items[i] = TextBatchItem{Index: i, Result: result, Err: err}
	}
	return items
}

// GenerateTableBatch is the table counterpart of GenerateTextBatch.
func (s *ContentService) GenerateTableBatch(ctx context.Context, reqs []TableRequest, parallel bool) []TableBatchItem {
	items := make([]TableBatchItem, len(reqs))

	if parallel {
		var wg sync.WaitGroup
		for i, req := range reqs {
			wg.Add(1)
			go func(i int, req TableRequest) {
				defer wg.Done()
				result, err := s.GenerateTable(ctx, req)
				items[i] = TableBatchItem{Index: i, Result: result, Err: err}
			}(i, req)
		}
		wg.Wait()
		return items
	}

	for i, req := range reqs {
		result, err := s.GenerateTable(ctx, req)
		items[i] = TableBatchItem{Index: i, Result: result, Err: err}
	}
	return items
}
