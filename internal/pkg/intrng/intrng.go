// Package intrng groups sorted integers into closed ranges of consecutive
// values.
package intrng

// Ranges returns the [first, last] pairs of runs of consecutive values in b.
// b must be sorted; repeated values join the run they belong to.
func Ranges(b []int) (xs [][2]int) {
	for i := 0; i < len(b); {
		j := i
		for j+1 < len(b) && (b[j+1] == b[j] || b[j+1] == b[j]+1) {
			j++
		}
		xs = append(xs, [2]int{b[i], b[j]})
		i = j + 1
	}
	return
}
