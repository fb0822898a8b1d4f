package services

import "math"

// Window describes where a page sits inside the full top-level listing.
type Window struct {
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// ComputeWindow derives the page window from an already-normalized
// limit/offset pair. Pure arithmetic, no error conditions.
func ComputeWindow(total int64, limit, offset int) Window {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages == 0 {
		totalPages = 1
	}

	return Window{
		TotalPages: totalPages,
		HasPrev:    offset > 0,
		HasNext:    int64(offset+limit) < total,
	}
}
