package store

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tourister/internal/geo"
)

// AttractionFilter holds the optional map-marker filters. Every unset
// dimension matches all attractions; set dimensions are conjunctive.
type AttractionFilter struct {
	Category  string     // empty = no category filter
	MinRating *float64   // minimum average rating, inclusive
	Date      *time.Time // same calendar day (local time) as created_at
	Center    *geo.Point // radius filter center
	RadiusKm  float64    // radius in kilometers, used only with Center
}

// Parse extracts filter parameters from the request URL.
func (f AttractionFilter) Parse(r *http.Request) (AttractionFilter, error) {
	params := r.URL.Query()

	if category := params.Get("category"); category != "" {
		if !IsValidCategory(category) {
			return f, fmt.Errorf("unknown category: %s", category)
		}
		f.Category = category
	}

	if ratingStr := params.Get("min_rating"); ratingStr != "" {
		rating, err := strconv.ParseFloat(ratingStr, 64)
		if err != nil {
			return f, fmt.Errorf("invalid min_rating value: %w", err)
		}
		if rating < 0 || rating > 5 {
			return f, fmt.Errorf("min_rating must be between 0 and 5")
		}
		f.MinRating = &rating
	}

	if dateStr := params.Get("date"); dateStr != "" {
		date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			return f, fmt.Errorf("invalid date value, use YYYY-MM-DD: %w", err)
		}
		f.Date = &date
	}

	latStr := params.Get("lat")
	lonStr := params.Get("lon")
	if latStr != "" || lonStr != "" {
		if latStr == "" || lonStr == "" {
			return f, fmt.Errorf("lat and lon must be supplied together")
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return f, fmt.Errorf("invalid lat value: %w", err)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return f, fmt.Errorf("invalid lon value: %w", err)
		}
		f.Center = &geo.Point{Latitude: lat, Longitude: lon}
	}

	if radiusStr := params.Get("radius"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			return f, fmt.Errorf("invalid radius value: %w", err)
		}
		if radius < 0 {
			return f, fmt.Errorf("radius must not be negative")
		}
		f.RadiusKm = radius
	}

	return f, nil
}

// Apply filters the candidate list. It is a pure function: input order
// is preserved and the input slice is never mutated.
func (f AttractionFilter) Apply(candidates []Attraction) []Attraction {
	filtered := make([]Attraction, 0, len(candidates))

	for _, a := range candidates {
		if f.Center != nil {
			point := geo.Point{Latitude: a.Latitude, Longitude: a.Longitude}
			if geo.DistanceMeters(*f.Center, point) > f.RadiusKm*1000 {
				continue
			}
		}
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		if f.MinRating != nil && a.AverageRating < *f.MinRating {
			continue
		}
		if f.Date != nil && !sameDay(a.CreatedAt, *f.Date) {
			continue
		}
		filtered = append(filtered, a)
	}

	return filtered
}

func sameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Local().Date()
	y2, m2, d2 := t2.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
