package models

// Coordinate represents a geographic position in degrees
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Point represents an identified point carrying its grid code
type Point struct {
	ID       string      `json:"id"`
	Code     string      `json:"code,omitempty"`
	Location *Coordinate `json:"location"`
}

// BoundingBox represents a rectangular area defined by two corners
type BoundingBox struct {
	BottomLeft Coordinate
	TopRight   Coordinate
}
