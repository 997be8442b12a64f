package store

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhotoURLsNeverBindsNull(t *testing.T) {
	// An attraction is created before any photo is uploaded, so the
	// insert must send '{}' for photo_urls, never SQL NULL.
	v, err := pq.Array(normalizePhotoURLs(nil)).Value()
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Equal(t, "{}", v)
}

func TestNormalizePhotoURLsKeepsExistingURLs(t *testing.T) {
	urls := []string{"https://res.cloudinary.com/demo/image/upload/attraction_1.jpg"}
	assert.Equal(t, urls, normalizePhotoURLs(urls))
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range AttractionCategories {
		assert.True(t, IsValidCategory(c))
	}
	assert.False(t, IsValidCategory("Shopping Malls"))
	assert.False(t, IsValidCategory(""))
}
