package repository

import (
	"fmt"
	"strings"
)

// DefaultBatchSize is the number of records per insert transaction when the
// caller does not specify one.
const DefaultBatchSize = 1000

// chunk splits a slice into contiguous sub-slices of at most size elements,
// preserving order.
func chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 || size <= 0 {
		return nil
	}

	numChunks := (len(items) + size - 1) / size
	result := make([][]T, 0, numChunks)

	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		result = append(result, items[i:end])
	}

	return result
}

// placeholderRows builds the VALUES clause for a multi-row insert:
// ($1, ..., $width), ($width+1, ...), ... for rows rows.
func placeholderRows(rows, width int) string {
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for c := 0; c < width; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", r*width+c+1)
		}
		sb.WriteByte(')')
	}
	return sb.String()
}
