package geoindex

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/kass/go-gridcode/pkg/gridcode"
	"github.com/kass/go-gridcode/pkg/models"
)

func cityPoints() []*models.Point {
	return []*models.Point{
		{ID: "1", Location: &models.Coordinate{Lat: 40.7128, Lon: -74.0060}},  // New York
		{ID: "2", Location: &models.Coordinate{Lat: 51.5074, Lon: -0.1278}},   // London
		{ID: "3", Location: &models.Coordinate{Lat: 48.8566, Lon: 2.3522}},    // Paris
		{ID: "4", Location: &models.Coordinate{Lat: 35.6762, Lon: 139.6503}},  // Tokyo
		{ID: "5", Location: &models.Coordinate{Lat: -33.8688, Lon: 151.2093}}, // Sydney
	}
}

func TestIndexAssignsCodes(t *testing.T) {
	index := NewCellIndex()
	points := cityPoints()

	if err := index.IndexPoints(points); err != nil {
		t.Fatalf("IndexPoints failed: %v", err)
	}

	if index.Count() != int64(len(points)) {
		t.Errorf("Expected %d points, got %d", len(points), index.Count())
	}

	for _, p := range points {
		if !gridcode.IsValidEncoding(p.Code) {
			t.Errorf("Point %s got invalid code %q", p.ID, p.Code)
		}
	}
}

func TestIndexFromCodesOnly(t *testing.T) {
	code, err := gridcode.Encode(40.7128, -74.0060, false)
	if err != nil {
		t.Fatal(err)
	}

	index := NewCellIndex()
	if err := index.IndexPoints([]*models.Point{{ID: "nyc", Code: code}}); err != nil {
		t.Fatalf("IndexPoints failed: %v", err)
	}

	results, err := index.QueryRadius(models.Coordinate{Lat: 40.7128, Lon: -74.0060}, 100)
	if err != nil {
		t.Fatalf("QueryRadius failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Location == nil {
		t.Fatal("Expected decoded location on indexed point")
	}
}

func TestIndexRejectsBadPoints(t *testing.T) {
	index := NewCellIndex()

	err := index.IndexPoints([]*models.Point{{ID: "empty"}})
	if err == nil {
		t.Error("Expected error for point with neither code nor location")
	}

	err = index.IndexPoints([]*models.Point{{ID: "bad", Code: "NOTACODE"}})
	if err == nil {
		t.Error("Expected error for invalid code")
	}
}

func TestQueryBox(t *testing.T) {
	index := NewCellIndex()
	if err := index.IndexPoints(cityPoints()); err != nil {
		t.Fatal(err)
	}

	// Box around Europe, should find London and Paris
	results, err := index.QueryBox(models.BoundingBox{
		BottomLeft: models.Coordinate{Lat: 45.0, Lon: -5.0},
		TopRight:   models.Coordinate{Lat: 55.0, Lon: 10.0},
	})
	if err != nil {
		t.Fatalf("QueryBox failed: %v", err)
	}

	if len(results) != 2 {
		t.Errorf("Expected 2 results in Europe box, got %d", len(results))
	}
}

func TestQueryRadius(t *testing.T) {
	center := models.Coordinate{Lat: 40.0, Lon: -74.0}
	index := NewCellIndex()

	points := []*models.Point{
		{ID: "center", Location: &models.Coordinate{Lat: center.Lat, Lon: center.Lon}},
		{ID: "near", Location: &models.Coordinate{Lat: center.Lat + 0.1, Lon: center.Lon + 0.1}}, // ~15km away
		{ID: "far", Location: &models.Coordinate{Lat: center.Lat + 1.0, Lon: center.Lon + 1.0}},  // ~140km away
	}
	if err := index.IndexPoints(points); err != nil {
		t.Fatal(err)
	}

	results, err := index.QueryRadius(center, 50000)
	if err != nil {
		t.Fatalf("QueryRadius failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results within 50km, got %d", len(results))
	}

	if _, err := index.QueryRadius(center, -1); err == nil {
		t.Error("Expected error for negative radius")
	}
}

func TestNearestNeighbors(t *testing.T) {
	index := NewCellIndex()

	var points []*models.Point
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			points = append(points, &models.Point{
				ID:       fmt.Sprintf("%d,%d", i, j),
				Location: &models.Coordinate{Lat: float64(i), Lon: float64(j)},
			})
		}
	}
	if err := index.IndexPoints(points); err != nil {
		t.Fatal(err)
	}

	neighbors := index.NearestNeighbors(models.Coordinate{Lat: 4.5, Lon: 4.5}, 5)
	if len(neighbors) != 5 {
		t.Errorf("Expected 5 neighbors, got %d", len(neighbors))
	}

	nearest := neighbors[0]
	dist := gridcode.Haversine(4.5, 4.5, nearest.Location.Lat, nearest.Location.Lon)
	if dist > 120000 {
		t.Errorf("Nearest neighbor too far: %.0fm", dist)
	}
}

func TestSaveAndLoad(t *testing.T) {
	index := NewCellIndex()
	if err := index.IndexPoints(cityPoints()); err != nil {
		t.Fatal(err)
	}

	file := filepath.Join(t.TempDir(), "index.gob")
	if err := index.SaveToFile(file); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded := NewCellIndex()
	if err := loaded.LoadFromFile(file); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if loaded.Count() != index.Count() {
		t.Errorf("Expected %d points after load, got %d", index.Count(), loaded.Count())
	}
}

func TestClear(t *testing.T) {
	index := NewCellIndex()
	if err := index.IndexPoints(cityPoints()); err != nil {
		t.Fatal(err)
	}

	index.Clear()
	if index.Count() != 0 {
		t.Errorf("Expected empty index after Clear, got %d", index.Count())
	}
}

func BenchmarkQueryRadius(b *testing.B) {
	index := NewCellIndex()

	numPoints := 100000
	points := make([]*models.Point, numPoints)
	for i := 0; i < numPoints; i++ {
		points[i] = &models.Point{
			ID:       fmt.Sprintf("p%d", i),
			Location: &models.Coordinate{Lat: rand.Float64()*180 - 90, Lon: rand.Float64()*360 - 180},
		}
	}
	if err := index.IndexPoints(points); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lat := rand.Float64()*180 - 90
		lon := rand.Float64()*360 - 180
		_, _ = index.QueryRadius(models.Coordinate{Lat: lat, Lon: lon}, 50000)
	}
}
