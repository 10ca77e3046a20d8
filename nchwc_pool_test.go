package guda

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// scenario 6: MaxPool 2x2 stride 2, input[x,y] = x+y.
func TestPoolMaxScenario(t *testing.T) {
	B := NchwcBlockSize()
	const ih, iw = 8, 8
	const oh, ow = 4, 4

	input := make([]float32, ih*iw*B)
	for row := 0; row < ih; row++ {
		for col := 0; col < iw; col++ {
			for lane := 0; lane < B; lane++ {
				input[(row*iw+col)*B+lane] = float32(row + col)
			}
		}
	}
	output := make([]float32, oh*ow*B)

	Pool(NchwcMaxPool, 2,
		[]int64{1, int64(B), ih, iw},
		[]int64{2, 2}, nil, nil, []int64{2, 2},
		[]int64{1, int64(B), oh, ow},
		input, output, nil, newFixedPool(2))

	for y := 0; y < oh; y++ {
		for x := 0; x < ow; x++ {
			want := float32((2*y + 1) + (2*x + 1))
			for lane := 0; lane < B; lane++ {
				got := output[(y*ow+x)*B+lane]
				assert.InDeltaf(t, want, got, 1e-6, "y=%d x=%d lane=%d", y, x, lane)
			}
		}
	}
}

// AvgPoolIncludePad over the same window with a uniform input reduces to
// the input value regardless of divisor, a useful sanity check that the
// include-pad divisor is the fixed kernel size.
func TestPoolAvgIncludePadUniformInput(t *testing.T) {
	B := NchwcBlockSize()
	const ih, iw = 4, 4
	const oh, ow = 2, 2

	input := make([]float32, ih*iw*B)
	for i := range input {
		input[i] = 3.0
	}
	output := make([]float32, oh*ow*B)

	Pool(NchwcAvgPoolIncludePad, 2,
		[]int64{1, int64(B), ih, iw},
		[]int64{2, 2}, nil, nil, []int64{2, 2},
		[]int64{1, int64(B), oh, ow},
		input, output, nil, newFixedPool(2))

	for i, v := range output {
		assert.InDeltaf(t, float32(3.0), v, 1e-6, "element %d", i)
	}
}

// AvgPoolExcludePad on a padded edge window must divide by the count of
// taps actually inside the input, not by the full kernel size.
func TestPoolAvgExcludePadCorner(t *testing.T) {
	B := NchwcBlockSize()
	const ih, iw = 4, 4

	oh := convOutputSize(ih, 3, 1, 1, 1, 2)
	ow := convOutputSize(iw, 3, 1, 1, 1, 2)

	input := make([]float32, ih*iw*B)
	for i := range input {
		input[i] = 1.0
	}
	output := make([]float32, oh*ow*B)

	Pool(NchwcAvgPoolExcludePad, 2,
		[]int64{1, int64(B), ih, iw},
		[]int64{3, 3}, nil, []int64{1, 1, 1, 1}, []int64{2, 2},
		[]int64{1, int64(B), int64(oh), int64(ow)},
		input, output, nil, newFixedPool(2))

	// The top-left corner sees only the valid taps inside the input; with a
	// uniform input of 1.0 the exclude-pad average must still be exactly 1.0.
	for lane := 0; lane < B; lane++ {
		assert.InDeltaf(t, float32(1.0), output[lane], 1e-6, "corner lane=%d", lane)
	}
}
