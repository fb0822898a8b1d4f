package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeWindow(t *testing.T) {
	tests := []struct {
		name   string
		total  int64
		limit  int
		offset int
		want   Window
	}{
		{"empty listing still has one page", 0, 5, 0, Window{TotalPages: 1, HasPrev: false, HasNext: false}},
		{"single partial page", 3, 5, 0, Window{TotalPages: 1, HasPrev: false, HasNext: false}},
		{"exact page boundary", 10, 5, 0, Window{TotalPages: 2, HasPrev: false, HasNext: true}},
		{"middle page", 12, 5, 5, Window{TotalPages: 3, HasPrev: true, HasNext: true}},
		{"last short page", 12, 5, 10, Window{TotalPages: 3, HasPrev: true, HasNext: false}},
		{"offset past the end", 12, 5, 20, Window{TotalPages: 3, HasPrev: true, HasNext: false}},
		{"limit larger than total", 4, 50, 0, Window{TotalPages: 1, HasPrev: false, HasNext: false}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ComputeWindow(tc.total, tc.limit, tc.offset))
		})
	}
}
