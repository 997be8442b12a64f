package store

import (
	"net/http/httptest"
	"testing"
	"time"

	"tourister/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAttractions() []Attraction {
	day := time.Date(2024, 6, 15, 10, 30, 0, 0, time.Local)
	return []Attraction{
		{ID: 1, Name: "Nis Fortress", Category: "Historical Sites", Latitude: 43.3275, Longitude: 21.8922, AverageRating: 4.5, NumberOfReviews: 12, CreatedAt: day},
		{ID: 2, Name: "Cegar Hill", Category: "Historical Sites", Latitude: 43.3647, Longitude: 21.9371, AverageRating: 3.2, NumberOfReviews: 5, CreatedAt: day.AddDate(0, 0, -3)},
		{ID: 3, Name: "Bojanine Vode", Category: "Natural Attractions", Latitude: 43.2264, Longitude: 22.1789, AverageRating: 4.9, NumberOfReviews: 7, CreatedAt: day.Add(8 * time.Hour)},
	}
}

func TestFilterAllUnsetReturnsInputUnchanged(t *testing.T) {
	attractions := testAttractions()

	filtered := AttractionFilter{}.Apply(attractions)

	assert.Equal(t, attractions, filtered)
}

func TestFilterIsIdempotent(t *testing.T) {
	rating := 4.0
	f := AttractionFilter{Category: "Historical Sites", MinRating: &rating}
	attractions := testAttractions()

	first := f.Apply(attractions)
	second := f.Apply(attractions)

	assert.Equal(t, first, second)
}

func TestFilterZeroRadiusExcludesEverything(t *testing.T) {
	f := AttractionFilter{
		Center: &geo.Point{Latitude: 10, Longitude: 10},
	}

	assert.Empty(t, f.Apply(testAttractions()))
}

func TestFilterRadius(t *testing.T) {
	// Center on the fortress; Cegar hill is ~5.5 km away, Bojanine Vode ~26 km.
	f := AttractionFilter{
		Center:   &geo.Point{Latitude: 43.3275, Longitude: 21.8922},
		RadiusKm: 10,
	}

	filtered := f.Apply(testAttractions())

	require.Len(t, filtered, 2)
	assert.Equal(t, int64(1), filtered[0].ID)
	assert.Equal(t, int64(2), filtered[1].ID)
}

func TestFilterByCategory(t *testing.T) {
	f := AttractionFilter{Category: "Natural Attractions"}

	filtered := f.Apply(testAttractions())

	require.Len(t, filtered, 1)
	assert.Equal(t, "Bojanine Vode", filtered[0].Name)
}

func TestFilterByMinRating(t *testing.T) {
	rating := 4.0
	f := AttractionFilter{MinRating: &rating}

	filtered := f.Apply(testAttractions())

	require.Len(t, filtered, 2)
	for _, a := range filtered {
		assert.GreaterOrEqual(t, a.AverageRating, rating)
	}
}

func TestFilterBySameCalendarDay(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)
	f := AttractionFilter{Date: &day}

	filtered := f.Apply(testAttractions())

	// Both same-day entries match regardless of time of day.
	require.Len(t, filtered, 2)
	assert.Equal(t, int64(1), filtered[0].ID)
	assert.Equal(t, int64(3), filtered[1].ID)
}

func TestFilterPredicatesAreConjunctive(t *testing.T) {
	rating := 4.0
	f := AttractionFilter{
		Category:  "Historical Sites",
		MinRating: &rating,
	}

	filtered := f.Apply(testAttractions())

	require.Len(t, filtered, 1)
	assert.Equal(t, "Nis Fortress", filtered[0].Name)
}

func TestFilterParse(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/attractions?category=Historical+Sites&min_rating=3.5&lat=43.32&lon=21.89&radius=5", nil)

	f, err := AttractionFilter{}.Parse(r)

	require.NoError(t, err)
	assert.Equal(t, "Historical Sites", f.Category)
	require.NotNil(t, f.MinRating)
	assert.Equal(t, 3.5, *f.MinRating)
	require.NotNil(t, f.Center)
	assert.Equal(t, 43.32, f.Center.Latitude)
	assert.Equal(t, 5.0, f.RadiusKm)
}

func TestFilterParseRejectsLoneLatitude(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/attractions?lat=43.32", nil)

	_, err := AttractionFilter{}.Parse(r)

	assert.Error(t, err)
}

func TestFilterParseRejectsUnknownCategory(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/attractions?category=Spaceports", nil)

	_, err := AttractionFilter{}.Parse(r)

	assert.Error(t, err)
}
