package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldRatingFirstReview(t *testing.T) {
	average, count := foldRating(0, 0, 4)

	assert.Equal(t, 4.0, average)
	assert.Equal(t, 1, count)
}

func TestFoldRatingSecondReview(t *testing.T) {
	average, count := foldRating(4.0, 1, 2)

	assert.Equal(t, 3.0, average)
	assert.Equal(t, 2, count)
}

func TestFoldRatingKeepsRunningAverage(t *testing.T) {
	ratings := []float64{5, 3, 4, 4, 1}

	var average float64
	var count int
	var sum float64
	for _, r := range ratings {
		average, count = foldRating(average, count, r)
		sum += r
	}

	assert.Equal(t, len(ratings), count)
	assert.InDelta(t, sum/float64(len(ratings)), average, 1e-9)
}
