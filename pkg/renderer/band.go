package renderer

// Band is a contiguous range of scanlines rendered by one worker.
// Rows are counted from the top of the image; EndRow is exclusive.
type Band struct {
	Index    int
	StartRow int
	EndRow   int
}

// Rows returns the number of scanlines in the band
func (b Band) Rows() int {
	return b.EndRow - b.StartRow
}

// NewBands splits height scanlines into at most n contiguous bands of
// ceil(height/n) rows each, the last one truncated at the image boundary.
// Empty bands are never produced, so fewer than n bands are returned when
// height is not large enough to give every band a row.
func NewBands(height, n int) []Band {
	if height <= 0 || n <= 0 {
		return nil
	}

	bandSize := (height + n - 1) / n // Ceiling division

	var bands []Band
	for start := 0; start < height; start += bandSize {
		bands = append(bands, Band{
			Index:    len(bands),
			StartRow: start,
			EndRow:   min(start+bandSize, height), // Don't exceed image bounds
		})
	}
	return bands
}
