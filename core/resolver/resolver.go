package resolver

// DefaultChunkSize is the number of ids sent per batch lookup call.
const DefaultChunkSize = 10

// Chunks partitions items into fixed-size groups, preserving order. The last
// chunk may be shorter. A size of zero or less falls back to the default.
func Chunks[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultChunkSize
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}

// LookupFunc resolves a chunk of ids against a batch lookup endpoint. Ids
// that no longer resolve are simply absent from the result.
type LookupFunc[R any] func(ids []string) ([]R, error)

// Resolve classifies every id as found or dead by resolving fixed-size
// chunks through lookup. An id present in a chunk but absent from the
// response is dead: deleted, suspended or regionally unavailable, which are
// indistinguishable to the caller. The key function extracts the id from a
// resolved record.
func Resolve[R any](ids []string, chunkSize int, lookup LookupFunc[R], key func(R) string) ([]R, map[string]struct{}, error) {
	found := make([]R, 0, len(ids))
	dead := make(map[string]struct{})

	for _, chunk := range Chunks(ids, chunkSize) {
		records, err := lookup(chunk)
		if err != nil {
			return nil, nil, err
		}

		resolved := make(map[string]struct{}, len(records))
		for _, record := range records {
			resolved[key(record)] = struct{}{}
		}
		for _, id := range chunk {
			if _, ok := resolved[id]; !ok {
				dead[id] = struct{}{}
			}
		}
		found = append(found, records...)
	}
	return found, dead, nil
}
