package placement

import "iter"

// Combinations yields every size-k subset of positions in lexicographic
// order. Each yielded slice is freshly allocated and ascending when positions
// is ascending. k == 0 yields one empty subset; k < 0 or k > len(positions)
// yields nothing.
func Combinations(positions []int, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		n := len(positions)
		if k < 0 || k > n {
			return
		}
		acc := make([]int, 0, k)

		var rec func(start, pick int) bool
		rec = func(start, pick int) bool {
			if pick == 0 {
				out := make([]int, len(acc))
				copy(out, acc)
				return yield(out)
			}
			for i := start; i <= n-pick; i++ {
				acc = append(acc, positions[i])
				if !rec(i+1, pick-1) {
					return false
				}
				acc = acc[:len(acc)-1]
			}
			return true
		}
		rec(0, k)
	}
}

// ChooseK collects Combinations into a slice.
func ChooseK(positions []int, k int) [][]int {
	var out [][]int
	for c := range Combinations(positions, k) {
		out = append(out, c)
	}
	return out
}
