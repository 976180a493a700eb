package gridcode

// GetNeighbors returns the grid codes of the cells adjacent to the given
// code, up to 8 of them. Cells clamped at the poles or antimeridian can
// collapse onto the center or onto each other; those are skipped, so fewer
// than 8 codes may come back.
func GetNeighbors(code string) ([]string, error) {
	lat, lon, err := Decode(code)
	if err != nil {
		return nil, err
	}
	clean := RemoveFormatting(code)

	latStep := 180.0 / float64(latMax)
	lonStep := 360.0 / float64(lonMax)

	neighbors := make([]string, 0, 8)
	seen := map[string]bool{clean: true}

	for _, dLat := range []float64{-1, 0, 1} {
		for _, dLon := range []float64{-1, 0, 1} {
			if dLat == 0 && dLon == 0 {
				continue
			}

			nLat := clamp(lat+dLat*latStep, minLat, maxLat)
			nLon := clamp(lon+dLon*lonStep, minLon, maxLon)

			encoded, err := Encode(nLat, nLon, false)
			if err != nil || seen[encoded] {
				continue
			}
			seen[encoded] = true
			neighbors = append(neighbors, encoded)
		}
	}

	return neighbors, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
