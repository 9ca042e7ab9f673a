// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package location

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DefaultWindow is the number of fixes averaged after the first one.
const DefaultWindow = 5

const earthRadiusKm = 6371.0

// Sample is one raw GPS fix from the geolocation stream.
type Sample struct {
	Lat       float64
	Lon       float64
	Timestamp time.Time
}

// Estimate is the smoothed position everything else reads as "my position".
type Estimate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether s carries usable coordinates.
// Callers must drop invalid samples before handing them to a Smoother.
func Valid(s Sample) bool {
	if math.IsNaN(s.Lat) || math.IsNaN(s.Lon) || math.IsInf(s.Lat, 0) || math.IsInf(s.Lon, 0) {
		return false
	}
	return s.Lat >= -90 && s.Lat <= 90 && s.Lon >= -180 && s.Lon <= 180
}

// Smoother turns a stream of fixes into a stable estimate.
// The first fix is taken verbatim; later fixes go into a FIFO window
// and the estimate becomes the mean of that window.
type Smoother struct {
	capacity int
	lats     []float64
	lons     []float64
	estimate Estimate
	hasFix   bool
}

// NewSmoother creates a smoother with the given window capacity.
// A capacity below one falls back to DefaultWindow.
func NewSmoother(capacity int) *Smoother {
	if capacity < 1 {
		capacity = DefaultWindow
	}
	return &Smoother{
		capacity: capacity,
		lats:     make([]float64, 0, capacity),
		lons:     make([]float64, 0, capacity),
	}
}

// Ingest accepts a fix and returns the updated estimate.
func (s *Smoother) Ingest(sample Sample) Estimate {
	if !s.hasFix {
		s.estimate = Estimate{Lat: sample.Lat, Lon: sample.Lon}
		s.hasFix = true
		return s.estimate
	}

	if len(s.lats) == s.capacity {
		s.lats = s.lats[1:]
		s.lons = s.lons[1:]
	}
	s.lats = append(s.lats, sample.Lat)
	s.lons = append(s.lons, sample.Lon)

	s.estimate = Estimate{
		Lat: stat.Mean(s.lats, nil),
		Lon: stat.Mean(s.lons, nil),
	}
	return s.estimate
}

// Estimate returns the current estimate and whether a first fix was ever accepted.
func (s *Smoother) Estimate() (Estimate, bool) {
	return s.estimate, s.hasFix
}

// Ready reports whether a position is known.
func (s *Smoother) Ready() bool {
	return s.hasFix
}

// Window returns the number of fixes currently averaged.
func (s *Smoother) Window() int {
	return len(s.lats)
}

// Distance returns the great-circle distance in kilometres between a and b.
func Distance(a, b Estimate) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Pow(math.Sin(dLon/2), 2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
