// Package geoops provides batch and spatial convenience operations built on
// the gridcode codec. Every function is a thin wrapper over the codec's
// public operations and never bypasses it.
package geoops

import (
	"fmt"
	"math"

	"github.com/kass/go-gridcode/pkg/gridcode"
	"github.com/kass/go-gridcode/pkg/models"
)

const (
	metersPerDegree = 111320.0
	scanStepMeters  = 3.0 // grid scan granularity for FindNearby
	scanLatLimit    = 80.0
)

// BatchEncode encodes coordinates in order. The first failing element
// aborts the batch.
func BatchEncode(coords []models.Coordinate, humanReadable bool) ([]string, error) {
	codes := make([]string, 0, len(coords))
	for i, c := range coords {
		code, err := gridcode.Encode(c.Lat, c.Lon, humanReadable)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// BatchDecode decodes grid codes in order. The first failing element
// aborts the batch.
func BatchDecode(codes []string) ([]models.Coordinate, error) {
	coords := make([]models.Coordinate, 0, len(codes))
	for i, code := range codes {
		lat, lon, err := gridcode.Decode(code)
		if err != nil {
			return nil, fmt.Errorf("code %d: %w", i, err)
		}
		coords = append(coords, models.Coordinate{Lat: lat, Lon: lon})
	}
	return coords, nil
}

// FindNearby returns up to maxResults grid codes within radiusMeters of the
// center, found by scanning a bounding rectangle at 3-meter granularity.
// This is a brute-force scan, acceptable only for small radii; the geoindex
// package serves larger workloads. Scanned points that fail to encode near
// the poles or the antimeridian are skipped.
func FindNearby(centerLat, centerLon, radiusMeters float64, maxResults int) ([]string, error) {
	if !(radiusMeters > 0) {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", gridcode.ErrInvalidArgument, radiusMeters)
	}
	if maxResults <= 0 {
		return nil, fmt.Errorf("%w: max results must be positive, got %d", gridcode.ErrInvalidArgument, maxResults)
	}

	centerCode, err := gridcode.Encode(centerLat, centerLon, false)
	if err != nil {
		return nil, err
	}

	// Flat-Earth bounding rectangle around the center
	latDelta := radiusMeters / metersPerDegree
	lonDelta := radiusMeters / (metersPerDegree * math.Cos(centerLat*math.Pi/180.0))

	minLat := math.Max(centerLat-latDelta, -scanLatLimit)
	maxLat := math.Min(centerLat+latDelta, scanLatLimit)
	minLon := math.Max(centerLon-lonDelta, -180.0)
	maxLon := math.Min(centerLon+lonDelta, 180.0)

	latStep := scanStepMeters / metersPerDegree
	lonStep := scanStepMeters / metersPerDegree

	results := make([]string, 0, maxResults)
	for lat := minLat; lat <= maxLat && len(results) < maxResults; lat += latStep {
		for lon := minLon; lon <= maxLon && len(results) < maxResults; lon += lonStep {
			code, err := gridcode.Encode(lat, lon, false)
			if err != nil {
				continue
			}
			dist, err := gridcode.CalculateDistance(centerCode, code)
			if err != nil {
				continue
			}
			if dist <= radiusMeters {
				results = append(results, code)
			}
		}
	}

	return results, nil
}

// GetBoundingBox returns the component-wise min/max box containing all
// coordinates.
func GetBoundingBox(coords []models.Coordinate) (models.BoundingBox, error) {
	if len(coords) == 0 {
		return models.BoundingBox{}, fmt.Errorf("%w: no coordinates", gridcode.ErrEmptyInput)
	}

	box := models.BoundingBox{BottomLeft: coords[0], TopRight: coords[0]}
	for _, c := range coords[1:] {
		box.BottomLeft.Lat = math.Min(box.BottomLeft.Lat, c.Lat)
		box.BottomLeft.Lon = math.Min(box.BottomLeft.Lon, c.Lon)
		box.TopRight.Lat = math.Max(box.TopRight.Lat, c.Lat)
		box.TopRight.Lon = math.Max(box.TopRight.Lon, c.Lon)
	}
	return box, nil
}

// GetCenterPoint returns the arithmetic mean of the coordinates. This is a
// Euclidean approximation: it is inaccurate near the poles and wrong for
// sets crossing the antimeridian (averaging 179 and -179 yields 0).
func GetCenterPoint(coords []models.Coordinate) (models.Coordinate, error) {
	if len(coords) == 0 {
		return models.Coordinate{}, fmt.Errorf("%w: no coordinates", gridcode.ErrEmptyInput)
	}

	var sumLat, sumLon float64
	for _, c := range coords {
		sumLat += c.Lat
		sumLon += c.Lon
	}
	n := float64(len(coords))
	return models.Coordinate{Lat: sumLat / n, Lon: sumLon / n}, nil
}

// GroupByCode buckets coordinates by their grid code. Coordinates closer
// together than the cell size land in the same bucket.
func GroupByCode(coords []models.Coordinate, humanReadable bool) (map[string][]models.Coordinate, error) {
	groups := make(map[string][]models.Coordinate)
	for i, c := range coords {
		code, err := gridcode.Encode(c.Lat, c.Lon, humanReadable)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		groups[code] = append(groups[code], c)
	}
	return groups, nil
}
