package geoindex

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/kass/go-gridcode/pkg/models"
)

// IndexData is the serializable form of the index
type IndexData struct {
	Points []*models.Point
	Count  int64
}

// SaveToFile saves the index to a binary file using gob encoding
func (g *CellIndex) SaveToFile(filename string) error {
	// rtreego has no iterator, so extract everything with a global box
	points, err := g.QueryBox(models.BoundingBox{
		BottomLeft: models.Coordinate{Lat: -90, Lon: -180},
		TopRight:   models.Coordinate{Lat: 90, Lon: 180},
	})
	if err != nil {
		return fmt.Errorf("failed to extract points: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	data := IndexData{Points: points, Count: g.itemCount.Load()}
	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	return nil
}

// LoadFromFile replaces the index contents with those saved in the file
func (g *CellIndex) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var data IndexData
	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}

	g.Clear()
	if err := g.IndexPoints(data.Points); err != nil {
		return fmt.Errorf("failed to index points: %w", err)
	}

	return nil
}
