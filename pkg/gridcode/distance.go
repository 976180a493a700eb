package gridcode

import (
	"fmt"
	"math"
)

// PrecisionInfo describes the maximum quantization error at a location
type PrecisionInfo struct {
	LatErrorM   float64 `json:"lat_error_m"`
	LonErrorM   float64 `json:"lon_error_m"`
	TotalErrorM float64 `json:"total_error_m"`
}

// CalculateDistance returns the great-circle distance in meters between two
// grid codes. Decode errors propagate unchanged.
func CalculateDistance(codeA, codeB string) (float64, error) {
	lat1, lon1, err := Decode(codeA)
	if err != nil {
		return 0, fmt.Errorf("first code: %w", err)
	}
	lat2, lon2, err := Decode(codeB)
	if err != nil {
		return 0, fmt.Errorf("second code: %w", err)
	}
	return Haversine(lat1, lon1, lat2, lon2), nil
}

// GetActualPrecision returns the quantization error bounds at the given
// location. Longitude error shrinks toward the poles as meridians converge;
// the input latitude is used, not a quantized one.
func GetActualPrecision(latitude, longitude float64) (PrecisionInfo, error) {
	if err := validateCoordinate(latitude, longitude); err != nil {
		return PrecisionInfo{}, err
	}

	latStepDeg := 180.0 / float64(uint64(1)<<latBits)
	lonStepDeg := 360.0 / float64(uint64(1)<<lonBits)

	latErrM := latStepDeg * metersPerDegree
	lonErrM := lonStepDeg * metersPerDegree * math.Cos(latitude*math.Pi/180.0)

	return PrecisionInfo{
		LatErrorM:   latErrM,
		LonErrorM:   lonErrM,
		TotalErrorM: math.Sqrt(latErrM*latErrM + lonErrM*lonErrM),
	}, nil
}

// Haversine calculates the great-circle distance in meters between two
// lat/lon points on a sphere of radius 6,371,000 m.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}
