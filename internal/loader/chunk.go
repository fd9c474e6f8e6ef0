package loader

// DefaultBatchSize is used when a caller passes a non-positive size.
const DefaultBatchSize = 500

// Chunk partitions rows into consecutive slices of at most size elements,
// keeping the original order. The chunks share the backing array of rows.
func Chunk[T any](rows []T, size int) [][]T {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if len(rows) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		chunks = append(chunks, rows[start:end:end])
	}
	return chunks
}
