package ui

// truncate shortens s to at most limit runes, appending an ellipsis
// when it had to cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// windowBounds returns the [start, end) slice of a list to show around
// the selection, paging in blocks of size.
func windowBounds(index, length, size int) (int, int) {
	if size <= 0 || length <= 0 {
		return 0, 0
	}
	start := index / size * size
	end := start + size
	if end > length {
		end = length
	}
	return start, end
}
