package pager

import "iter"

// DefaultLimit is the page size used when callers have no reason to deviate.
const DefaultLimit = 100

// FetchFunc returns one page of at most limit items starting at offset.
type FetchFunc[T any] func(limit, offset int) ([]T, error)

// Offset turns an offset-based listing endpoint into a lazy sequence of
// batches. Offsets increase monotonically in fixed limit-sized increments
// starting at 0; the sequence ends at the first empty batch. The sequence is
// single-pass: re-ranging re-issues remote calls from offset 0, which may
// observe different remote state.
func Offset[T any](limit int, fetch FetchFunc[T]) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		for offset := 0; ; offset += limit {
			batch, err := fetch(limit, offset)
			if err != nil {
				yield(nil, err)
				return
			}
			if len(batch) == 0 {
				return
			}
			if !yield(batch, nil) {
				return
			}
		}
	}
}

// CursorFetchFunc returns one page of at most limit items older than the
// before cursor. An empty cursor requests the newest page.
type CursorFetchFunc[T any] func(before string, limit int) ([]T, error)

// Before turns a before-cursor feed endpoint into a lazy sequence of batches.
// The cursor for the next page is extracted from the last item of the current
// batch. The sequence ends at the first empty batch.
func Before[T any](limit int, fetch CursorFetchFunc[T], cursor func(T) string) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		before := ""
		for {
			batch, err := fetch(before, limit)
			if err != nil {
				yield(nil, err)
				return
			}
			if len(batch) == 0 {
				return
			}
			if !yield(batch, nil) {
				return
			}
			before = cursor(batch[len(batch)-1])
		}
	}
}

// Collect drains a sequence into a single slice. Convenience for call sites
// that need the whole collection anyway.
func Collect[T any](seq iter.Seq2[[]T, error]) ([]T, error) {
	var all []T
	for batch, err := range seq {
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}
	return all, nil
}
