package display

import (
	"math"
)

// Downsampler picks at most max of the n points (xs[i], ys[i]) and returns
// their indices in ascending order. It must keep the shape of the curve.
type Downsampler func(xs, ys []float64, max int) []int

// BucketDownsample is a Largest-Triangle-Three-Buckets reduction. The first
// and last points are always kept; every bucket in between contributes the
// point forming the largest triangle with the previously kept point and the
// average of the next bucket.
func BucketDownsample(xs, ys []float64, max int) []int {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if max <= 0 || n <= max {
		return allIndices(n)
	}
	if max < 3 {
		if max == 1 {
			return []int{0}
		}
		return []int{0, n - 1}
	}

	out := make([]int, 0, max)
	out = append(out, 0)

	every := float64(n-2) / float64(max-2)
	a := 0

	for i := 0; i < max-2; i++ {
		avgStart := int(math.Floor(float64(i+1)*every)) + 1
		avgEnd := int(math.Floor(float64(i+2)*every)) + 1
		if avgEnd > n {
			avgEnd = n
		}
		avgX, avgY := 0.0, 0.0
		for j := avgStart; j < avgEnd; j++ {
			avgX += xs[j]
			avgY += ys[j]
		}
		if count := float64(avgEnd - avgStart); count > 0 {
			avgX /= count
			avgY /= count
		}

		rangeStart := int(math.Floor(float64(i)*every)) + 1
		rangeEnd := int(math.Floor(float64(i+1)*every)) + 1

		maxArea := -1.0
		next := rangeStart
		for j := rangeStart; j < rangeEnd && j < n-1; j++ {
			area := math.Abs((xs[a]-avgX)*(ys[j]-ys[a])-(xs[a]-xs[j])*(avgY-ys[a])) * 0.5
			if area > maxArea {
				maxArea = area
				next = j
			}
		}

		out = append(out, next)
		a = next
	}

	return append(out, n-1)
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
