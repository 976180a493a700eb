package main

import (
	"fmt"
	"log"

	"github.com/kass/go-gridcode/pkg/geoindex"
	"github.com/kass/go-gridcode/pkg/geoops"
	"github.com/kass/go-gridcode/pkg/gridcode"
	"github.com/kass/go-gridcode/pkg/models"
)

func main() {
	// Sample points for major US cities
	cities := []*models.Point{
		{ID: "NYC", Location: &models.Coordinate{Lat: 40.7128, Lon: -74.0060}},
		{ID: "LAX", Location: &models.Coordinate{Lat: 34.0522, Lon: -118.2437}},
		{ID: "CHI", Location: &models.Coordinate{Lat: 41.8781, Lon: -87.6298}},
		{ID: "HOU", Location: &models.Coordinate{Lat: 29.7604, Lon: -95.3698}},
		{ID: "PHX", Location: &models.Coordinate{Lat: 33.4484, Lon: -112.0740}},
		{ID: "PHL", Location: &models.Coordinate{Lat: 39.9526, Lon: -75.1652}},
		{ID: "SAT", Location: &models.Coordinate{Lat: 29.4241, Lon: -98.4936}},
		{ID: "SDG", Location: &models.Coordinate{Lat: 32.7157, Lon: -117.1611}},
		{ID: "DAL", Location: &models.Coordinate{Lat: 32.7767, Lon: -96.7970}},
		{ID: "SFO", Location: &models.Coordinate{Lat: 37.7749, Lon: -122.4194}},
	}

	// Example 1: Encode every city to its grid code
	fmt.Println("=== Grid Codes ===")
	for _, city := range cities {
		code, err := gridcode.Encode(city.Location.Lat, city.Location.Lon, false)
		if err != nil {
			log.Fatal(err)
		}
		formatted, _ := gridcode.FormatForHumans(code)
		fmt.Printf("  %s: %s (%s)\n", city.ID, code, formatted)
	}

	// Example 2: Distance between two codes
	fmt.Println("\n=== Distance NYC → LAX ===")
	nyc, _ := gridcode.Encode(40.7128, -74.0060, false)
	lax, _ := gridcode.Encode(34.0522, -118.2437, false)
	dist, err := gridcode.CalculateDistance(nyc, lax)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  %.1f km\n", dist/1000)

	// Example 3: Bounding box and center of all cities
	fmt.Println("\n=== Bounding Box & Center ===")
	coords := make([]models.Coordinate, len(cities))
	for i, city := range cities {
		coords[i] = *city.Location
	}

	box, err := geoops.GetBoundingBox(coords)
	if err != nil {
		log.Fatal(err)
	}
	center, err := geoops.GetCenterPoint(coords)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  Box: (%.4f, %.4f) to (%.4f, %.4f)\n",
		box.BottomLeft.Lat, box.BottomLeft.Lon, box.TopRight.Lat, box.TopRight.Lon)
	fmt.Printf("  Center: (%.4f, %.4f)\n", center.Lat, center.Lon)

	// Example 4: Index the cities and query by radius
	fmt.Println("\n=== Cities within 500km of Dallas ===")
	index := geoindex.NewCellIndex()
	if err := index.IndexPoints(cities); err != nil {
		log.Fatal(err)
	}

	dallas := models.Coordinate{Lat: 32.7767, Lon: -96.7970}
	results, err := index.QueryRadius(dallas, 500000)
	if err != nil {
		log.Fatal(err)
	}
	for _, city := range results {
		d := gridcode.Haversine(dallas.Lat, dallas.Lon, city.Location.Lat, city.Location.Lon)
		fmt.Printf("  - %s [%s]: %.1f km away\n", city.ID, city.Code, d/1000)
	}

	// Example 5: Save and reload the index
	fmt.Println("\n=== Persistence ===")
	if err := index.SaveToFile("cities.gob"); err != nil {
		log.Fatal(err)
	}
	loaded := geoindex.NewCellIndex()
	if err := loaded.LoadFromFile("cities.gob"); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  Reloaded index with %d points\n", loaded.Count())
}
