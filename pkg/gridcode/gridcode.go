// Package gridcode implements a fixed-precision codec between geographic
// coordinates and 9-character base32 grid codes. Latitude is quantized to
// 22 bits and longitude to 23 bits, packed into a 45-bit value and rendered
// with a human-friendly alphabet. Precision is roughly uniform worldwide:
// the extra longitude bit compensates for meridian convergence.
//
// All functions are pure and safe for concurrent use.
package gridcode

import (
	"fmt"
	"strings"
)

const (
	// Alphabet is the base32 character set. Visually ambiguous letters
	// I, L, O and U are excluded.
	Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

	// CodeLength is the length of a compact grid code
	CodeLength = 9

	// FormattedCodeLength is the length of a XXX-XXX-XXX formatted code
	FormattedCodeLength = 11

	latBits = 22
	lonBits = 23
	latMax  = (1 << latBits) - 1
	lonMax  = (1 << lonBits) - 1

	minLat = -90.0
	maxLat = 90.0
	minLon = -180.0
	maxLon = 180.0

	earthRadiusM    = 6371000.0
	metersPerDegree = 111320.0 // meters per degree of latitude at the equator
)

// charValues maps ASCII bytes to their alphabet index, -1 for invalid.
// Decoding is case-insensitive.
var charValues [128]int8

func init() {
	for i := range charValues {
		charValues[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		c := Alphabet[i]
		charValues[c] = int8(i)
		charValues[c|0x20] = int8(i) // lowercase
	}
}

// Encode converts latitude and longitude in degrees to a 9-character grid
// code. With humanReadable set, the code is returned as XXX-XXX-XXX.
func Encode(latitude, longitude float64, humanReadable bool) (string, error) {
	if err := validateCoordinate(latitude, longitude); err != nil {
		return "", err
	}

	// Normalize to [0, 1] and quantize to the available bits. The clamp
	// guards the upper boundary (lat=90, lon=180) against floating-point
	// overflow of the bit field.
	latNorm := (latitude - minLat) / 180.0
	lonNorm := (longitude - minLon) / 360.0

	latIdx := uint64(latNorm * latMax)
	if latIdx > latMax {
		latIdx = latMax
	}
	lonIdx := uint64(lonNorm * lonMax)
	if lonIdx > lonMax {
		lonIdx = lonMax
	}

	// Pack as [22-bit lat][23-bit lon], 45 bits total
	packed := (latIdx << lonBits) | lonIdx

	// 45 bits render as exactly 9 base32 digits, most significant first
	var buf [CodeLength]byte
	for i := CodeLength - 1; i >= 0; i-- {
		buf[i] = Alphabet[packed&0x1F]
		packed >>= 5
	}

	code := string(buf[:])
	if humanReadable {
		return FormatForHumans(code)
	}
	return code, nil
}

// Decode converts a grid code back to latitude and longitude in degrees.
// Dashes are stripped first, so both compact and formatted codes decode
// identically. Matching is case-insensitive.
func Decode(code string) (latitude, longitude float64, err error) {
	clean := RemoveFormatting(code)
	if len(clean) != CodeLength {
		return 0, 0, fmt.Errorf("%w: got %d characters, want %d", ErrInvalidFormat, len(clean), CodeLength)
	}

	var packed uint64
	for i := 0; i < CodeLength; i++ {
		c := clean[i]
		v := int8(-1)
		if c < 128 {
			v = charValues[c]
		}
		if v < 0 {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCharacter, rune(c))
		}
		packed = (packed << 5) | uint64(v)
	}

	lonIdx := packed & lonMax
	latIdx := (packed >> lonBits) & latMax

	latitude = float64(latIdx)/latMax*180.0 + minLat
	longitude = float64(lonIdx)/lonMax*360.0 + minLon
	return latitude, longitude, nil
}

// IsValidEncoding reports whether code would decode successfully.
// It never returns an error.
func IsValidEncoding(code string) bool {
	clean := RemoveFormatting(code)
	if len(clean) != CodeLength {
		return false
	}
	for i := 0; i < CodeLength; i++ {
		c := clean[i]
		if c >= 128 || charValues[c] < 0 {
			return false
		}
	}
	return true
}

// FormatForHumans inserts dashes into a compact code: Q7KH2BBYF → Q7K-H2B-BYF.
func FormatForHumans(code string) (string, error) {
	if len(code) != CodeLength {
		return "", fmt.Errorf("%w: got %d characters, want %d", ErrInvalidFormat, len(code), CodeLength)
	}
	return code[0:3] + "-" + code[3:6] + "-" + code[6:9], nil
}

// RemoveFormatting strips dashes from a formatted code. Formatting is
// cosmetic only, so no length check is performed here.
func RemoveFormatting(code string) string {
	return strings.ReplaceAll(code, "-", "")
}

// IsFormattedForHumans reports whether code is in XXX-XXX-XXX form.
func IsFormattedForHumans(code string) bool {
	return len(code) == FormattedCodeLength && code[3] == '-' && code[7] == '-'
}

func validateCoordinate(latitude, longitude float64) error {
	// Written so NaN fails both checks
	if !(latitude >= minLat && latitude <= maxLat) {
		return fmt.Errorf("%w: latitude %v not in [%v, %v]", ErrOutOfRange, latitude, minLat, maxLat)
	}
	if !(longitude >= minLon && longitude <= maxLon) {
		return fmt.Errorf("%w: longitude %v not in [%v, %v]", ErrOutOfRange, longitude, minLon, maxLon)
	}
	return nil
}
