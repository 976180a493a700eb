// Package geoindex provides a thread-safe R-Tree index over grid-code
// cells. It is the scalable counterpart to geoops.FindNearby: points are
// snapped to their grid code on insert, so queries resolve against cell
// centers with the codec's worldwide precision bounds.
package geoindex

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/dhconnelly/rtreego"

	"github.com/kass/go-gridcode/pkg/gridcode"
	"github.com/kass/go-gridcode/pkg/models"
)

const (
	tolerance   = 0.0001
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

// spatialItem wraps a Point for R-Tree indexing
type spatialItem struct {
	*models.Point
	rect *rtreego.Rect
}

func (si *spatialItem) Bounds() *rtreego.Rect {
	return si.rect
}

// CellIndex is a thread-safe R-Tree over grid-code cells
type CellIndex struct {
	tree      *rtreego.Rtree
	mu        sync.RWMutex
	itemCount atomic.Int64
}

// NewCellIndex creates an empty index
func NewCellIndex() *CellIndex {
	return &CellIndex{
		tree: rtreego.NewTree(dimensions, minChildren, maxChildren),
	}
}

// IndexPoints inserts a batch of points. A point missing its grid code gets
// one from its location; a point missing its location is decoded from its
// code. Points with neither, or with an invalid code or location, fail the
// whole batch.
func (g *CellIndex) IndexPoints(points []*models.Point) error {
	items := make([]rtreego.Spatial, 0, len(points))
	for i, point := range points {
		if point == nil {
			continue
		}
		if err := resolvePoint(point); err != nil {
			return fmt.Errorf("point %d (%s): %w", i, point.ID, err)
		}

		rtPoint := rtreego.Point{point.Location.Lat, point.Location.Lon}
		items = append(items, &spatialItem{point, rtPoint.ToRect(tolerance)})
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, item := range items {
		g.tree.Insert(item)
	}
	g.itemCount.Add(int64(len(items)))
	return nil
}

// resolvePoint fills in a point's missing code or location via the codec.
func resolvePoint(point *models.Point) error {
	switch {
	case point.Location != nil && point.Code == "":
		code, err := gridcode.Encode(point.Location.Lat, point.Location.Lon, false)
		if err != nil {
			return err
		}
		point.Code = code
	case point.Location == nil && point.Code != "":
		lat, lon, err := gridcode.Decode(point.Code)
		if err != nil {
			return err
		}
		point.Location = &models.Coordinate{Lat: lat, Lon: lon}
	case point.Location == nil && point.Code == "":
		return fmt.Errorf("%w: point has neither code nor location", gridcode.ErrInvalidArgument)
	}
	return nil
}

// QueryBox returns all points within the given bounding box
func (g *CellIndex) QueryBox(box models.BoundingBox) ([]*models.Point, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	bottomLeft := rtreego.Point{box.BottomLeft.Lat, box.BottomLeft.Lon}
	rectSize := []float64{
		box.TopRight.Lat - box.BottomLeft.Lat,
		box.TopRight.Lon - box.BottomLeft.Lon,
	}

	bounds, err := rtreego.NewRect(bottomLeft, rectSize)
	if err != nil {
		return nil, fmt.Errorf("invalid bounding box: %w", err)
	}

	results := g.tree.SearchIntersect(bounds)

	// The tolerance rect can intersect just outside the box
	points := make([]*models.Point, 0, len(results))
	for _, result := range results {
		item, ok := result.(*spatialItem)
		if !ok || item.Point == nil || item.Location == nil {
			continue
		}

		loc := item.Location
		if loc.Lat >= box.BottomLeft.Lat && loc.Lat <= box.TopRight.Lat &&
			loc.Lon >= box.BottomLeft.Lon && loc.Lon <= box.TopRight.Lon {
			points = append(points, item.Point)
		}
	}

	return points, nil
}

// QueryRadius returns all points within radiusMeters of the center,
// post-filtered by haversine distance.
func (g *CellIndex) QueryRadius(center models.Coordinate, radiusMeters float64) ([]*models.Point, error) {
	if !(radiusMeters > 0) {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", gridcode.ErrInvalidArgument, radiusMeters)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	// Convert radius to degrees (approximation)
	deg := (radiusMeters / 6371000.0) * (180 / math.Pi)

	bounds, err := rtreego.NewRect(
		rtreego.Point{center.Lat - deg, center.Lon - deg},
		[]float64{2 * deg, 2 * deg},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid radius search: %w", err)
	}

	results := g.tree.SearchIntersect(bounds)

	points := make([]*models.Point, 0, len(results))
	for _, result := range results {
		item, ok := result.(*spatialItem)
		if !ok || item.Point == nil || item.Location == nil {
			continue
		}

		dist := gridcode.Haversine(center.Lat, center.Lon, item.Location.Lat, item.Location.Lon)
		if dist <= radiusMeters {
			points = append(points, item.Point)
		}
	}

	return points, nil
}

// NearestNeighbors returns the n points nearest to the center
func (g *CellIndex) NearestNeighbors(center models.Coordinate, n int) []*models.Point {
	g.mu.RLock()
	defer g.mu.RUnlock()

	queryPoint := rtreego.Point{center.Lat, center.Lon}
	results := g.tree.NearestNeighbors(n, queryPoint)

	points := make([]*models.Point, 0, len(results))
	for _, result := range results {
		if item, ok := result.(*spatialItem); ok {
			points = append(points, item.Point)
		}
	}

	return points
}

// Count returns the number of indexed points
func (g *CellIndex) Count() int64 {
	return g.itemCount.Load()
}

// Clear removes all points from the index
func (g *CellIndex) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tree = rtreego.NewTree(dimensions, minChildren, maxChildren)
	g.itemCount.Store(0)
}
