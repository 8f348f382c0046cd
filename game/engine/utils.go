package engine

import "strings"

// isPowerOfTwo reports whether v is a positive power of two
func isPowerOfTwo(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

// SumCells returns the sum of all tile values
func SumCells(cells []uint32) uint64 {
	var sum uint64
	for _, v := range cells {
		sum += uint64(v)
	}
	return sum
}

// CountTiles returns the number of non-empty cells
func CountTiles(cells []uint32) int {
	count := 0
	for _, v := range cells {
		if v != 0 {
			count++
		}
	}
	return count
}

// messageOr returns msg, or fallback when msg is empty
func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

// containsVerb reports whether msg expects the direction as a %s argument
func containsVerb(msg string) bool {
	return strings.Contains(msg, "%s")
}
