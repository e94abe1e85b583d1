package dashboard

import (
	"fmt"
	"strings"
)

// Size is the display class of a tile on the grid.
type Size string

const (
	SizeSmall  Size = "small"
	SizeWide   Size = "wide"
	SizeTall   Size = "tall"
	SizeBig    Size = "big"
	SizeBanner Size = "banner"
	SizePoster Size = "poster"
)

// Sizes is the resize cycle order.
var Sizes = []Size{SizeSmall, SizeWide, SizeTall, SizeBig, SizeBanner, SizePoster}

// ParseSize accepts a size name in any case.
func ParseSize(raw string) (Size, error) {
	s := Size(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("dashboard: unknown size %q", raw)
	}
	return s, nil
}

// Valid reports whether s is one of Sizes.
func (s Size) Valid() bool {
	for _, v := range Sizes {
		if v == s {
			return true
		}
	}
	return false
}

// Next returns the following size in the cycle. Unknown sizes restart the
// cycle at wide, as if they were small.
func (s Size) Next() Size {
	for i, v := range Sizes {
		if v == s {
			return Sizes[(i+1)%len(Sizes)]
		}
	}
	return Sizes[1]
}

// Span is the number of grid columns and rows the size occupies on a full
// width grid.
func (s Size) Span() (cols, rows int) {
	switch s {
	case SizeWide:
		return 2, 1
	case SizeTall:
		return 1, 2
	case SizeBig:
		return 2, 2
	case SizeBanner:
		return 4, 1
	case SizePoster:
		return 4, 2
	default:
		return 1, 1
	}
}
