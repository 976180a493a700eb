package gridcode

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCities = []struct {
	name     string
	lat, lon float64
}{
	{"New York", 40.7128, -74.0060},
	{"London", 51.5074, -0.1278},
	{"Paris", 48.8566, 2.3522},
	{"Tokyo", 35.6762, 139.6503},
	{"Sydney", -33.8688, 151.2093},
	{"Null Island", 0.0, 0.0},
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, city := range testCities {
		code, err := Encode(city.lat, city.lon, false)
		require.NoError(t, err, city.name)
		require.Len(t, code, CodeLength)

		lat, lon, err := Decode(code)
		require.NoError(t, err, city.name)
		assert.InDelta(t, city.lat, lat, 0.01, city.name)
		assert.InDelta(t, city.lon, lon, 0.01, city.name)
	}
}

func TestRoundTripWithinPrecision(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		lat := r.Float64()*180 - 90
		lon := r.Float64()*360 - 180

		code, err := Encode(lat, lon, false)
		require.NoError(t, err)

		decLat, decLon, err := Decode(code)
		require.NoError(t, err)

		precision, err := GetActualPrecision(lat, lon)
		require.NoError(t, err)

		// Per-axis error bound in degrees, with a little slack for the
		// divisor differing by one between encode and the error formula
		latBoundDeg := precision.LatErrorM / metersPerDegree * 1.01
		lonBoundDeg := 360.0 / float64(lonMax) * 1.01

		assert.LessOrEqual(t, absDiff(lat, decLat), latBoundDeg, "lat=%v lon=%v", lat, lon)
		assert.LessOrEqual(t, absDiff(lon, decLon), lonBoundDeg, "lat=%v lon=%v", lat, lon)
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestEncodeOutOfRange(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
		axis     string
	}{
		{"lat too high", 90.01, 0, "latitude"},
		{"lat too low", -90.01, 0, "latitude"},
		{"lon too high", 0, 180.01, "longitude"},
		{"lon too low", 0, -180.01, "longitude"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(tc.lat, tc.lon, false)
			require.ErrorIs(t, err, ErrOutOfRange)
			assert.Contains(t, err.Error(), tc.axis)
		})
	}
}

func TestBoundaryExactness(t *testing.T) {
	// The extreme corners must clamp into the bit fields, not wrap
	code, err := Encode(90, 180, false)
	require.NoError(t, err)
	lat, lon, err := Decode(code)
	require.NoError(t, err)
	assert.InDelta(t, 90.0, lat, 1e-9)
	assert.InDelta(t, 180.0, lon, 1e-9)

	code, err = Encode(-90, -180, false)
	require.NoError(t, err)
	lat, lon, err = Decode(code)
	require.NoError(t, err)
	assert.InDelta(t, -90.0, lat, 1e-9)
	assert.InDelta(t, -180.0, lon, 1e-9)
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	_, _, err := Decode("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = Decode("TOOLONGSTRING")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = Decode("Q7KH2BBY") // 8 chars
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = Decode("Q7KH2BBYI") // I is not in the alphabet
	require.ErrorIs(t, err, ErrInvalidCharacter)
	assert.Contains(t, err.Error(), "I")
}

func TestDecodeCaseInsensitive(t *testing.T) {
	code, err := Encode(40.7128, -74.0060, false)
	require.NoError(t, err)

	lat1, lon1, err := Decode(code)
	require.NoError(t, err)
	lat2, lon2, err := Decode(strings.ToLower(code))
	require.NoError(t, err)

	assert.Equal(t, lat1, lat2)
	assert.Equal(t, lon1, lon2)
}

func TestIsValidEncoding(t *testing.T) {
	assert.True(t, IsValidEncoding("Q7KH2BBYF"))
	assert.True(t, IsValidEncoding("Q7K-H2B-BYF"))
	assert.False(t, IsValidEncoding("INVALID123"))
	assert.False(t, IsValidEncoding("TOOLONGSTRING"))
	assert.False(t, IsValidEncoding(""))
}

func TestFormatting(t *testing.T) {
	code, err := Encode(40.7128, -74.0060, false)
	require.NoError(t, err)

	formatted, err := FormatForHumans(code)
	require.NoError(t, err)
	assert.Len(t, formatted, FormattedCodeLength)
	assert.Equal(t, byte('-'), formatted[3])
	assert.Equal(t, byte('-'), formatted[7])
	assert.Equal(t, 2, strings.Count(formatted, "-"))

	assert.Equal(t, code, RemoveFormatting(formatted))
	assert.True(t, IsFormattedForHumans(formatted))
	assert.False(t, IsFormattedForHumans(code))

	// The two forms decode bit-for-bit identically
	lat1, lon1, err := Decode(code)
	require.NoError(t, err)
	lat2, lon2, err := Decode(formatted)
	require.NoError(t, err)
	assert.Equal(t, lat1, lat2)
	assert.Equal(t, lon1, lon2)

	_, err = FormatForHumans("SHORT")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestEncodeHumanReadable(t *testing.T) {
	formatted, err := Encode(51.5074, -0.1278, true)
	require.NoError(t, err)
	assert.Len(t, formatted, FormattedCodeLength)
	assert.True(t, IsFormattedForHumans(formatted))

	compact, err := Encode(51.5074, -0.1278, false)
	require.NoError(t, err)
	assert.Equal(t, compact, RemoveFormatting(formatted))
}

func TestAlphabetClosure(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		lat := r.Float64()*180 - 90
		lon := r.Float64()*360 - 180

		code, err := Encode(lat, lon, false)
		require.NoError(t, err)

		for _, c := range code {
			assert.Contains(t, Alphabet, string(c))
		}
	}
}

func TestCalculateDistance(t *testing.T) {
	nyc, err := Encode(40.7128, -74.0060, false)
	require.NoError(t, err)
	london, err := Encode(51.5074, -0.1278, false)
	require.NoError(t, err)

	dist, err := CalculateDistance(nyc, london)
	require.NoError(t, err)
	assert.Greater(t, dist, 5500000.0)
	assert.Less(t, dist, 5600000.0)

	// Symmetry
	reverse, err := CalculateDistance(london, nyc)
	require.NoError(t, err)
	assert.InDelta(t, dist, reverse, 1e-6)

	// Same code, zero distance
	self, err := CalculateDistance(nyc, nyc)
	require.NoError(t, err)
	assert.Equal(t, 0.0, self)

	// Decode errors propagate
	_, err = CalculateDistance("BADCODE", london)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, err = CalculateDistance(nyc, "BADCODE")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestGetActualPrecision(t *testing.T) {
	equator, err := GetActualPrecision(0, 0)
	require.NoError(t, err)

	// ~4.78m per axis at the equator
	assert.InDelta(t, 4.78, equator.LatErrorM, 0.01)
	assert.InDelta(t, 4.78, equator.LonErrorM, 0.01)
	assert.GreaterOrEqual(t, equator.TotalErrorM, equator.LatErrorM)
	assert.GreaterOrEqual(t, equator.TotalErrorM, equator.LonErrorM)

	// Latitude error is constant, longitude error shrinks toward the poles
	midLat, err := GetActualPrecision(60, 0)
	require.NoError(t, err)
	assert.Equal(t, equator.LatErrorM, midLat.LatErrorM)
	assert.Less(t, midLat.LonErrorM, equator.LonErrorM)

	_, err = GetActualPrecision(95, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestGetNeighbors(t *testing.T) {
	code, err := Encode(40.7128, -74.0060, false)
	require.NoError(t, err)

	neighbors, err := GetNeighbors(code)
	require.NoError(t, err)
	require.NotEmpty(t, neighbors)
	assert.LessOrEqual(t, len(neighbors), 8)

	for _, n := range neighbors {
		assert.True(t, IsValidEncoding(n))
		assert.NotEqual(t, code, n)

		dist, err := CalculateDistance(code, n)
		require.NoError(t, err)
		assert.Less(t, dist, 25.0, "neighbor %s too far", n)
	}

	_, err = GetNeighbors("BADCODE")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func BenchmarkEncode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Encode(40.7128, -74.0060, false)
	}
}

func BenchmarkDecode(b *testing.B) {
	code, _ := Encode(40.7128, -74.0060, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = Decode(code)
	}
}
