package intrng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRanges(t *testing.T) {
	for _, x := range []struct {
		b    []int
		want [][2]int
	}{
		{nil, nil},
		{[]int{5}, [][2]int{{5, 5}}},
		{[]int{0, 1, 2, 7, 358, 359, 360}, [][2]int{{0, 2}, {7, 7}, {358, 360}}},
		{[]int{1, 1, 2, 4, 4}, [][2]int{{1, 2}, {4, 4}}},
		{[]int{1, 3, 5}, [][2]int{{1, 1}, {3, 3}, {5, 5}}},
	} {
		assert.Equal(t, x.want, Ranges(x.b), "%v", x.b)
	}
}
