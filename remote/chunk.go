// ABOUTME: This file implements the batch chunking policy for oversized remote requests
// ABOUTME: Oversized batches split into ceil(n/cap) pieces submitted independently

package remote

// chunk splits items into sub-slices of at most size elements. The last
// chunk holds the remainder.
func chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
