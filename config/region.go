package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/zauartcc/datafeed/region"
)

// RegionFile is the on-disk shape of the static region configuration.
// Boundary vertices are [latitude, longitude] pairs in polygon order.
type RegionFile struct {
	Boundary          [][2]float64 `json:"boundary"`
	Airports          []string     `json:"airports"`
	Positions         []string     `json:"positions"`
	Neighbors         []string     `json:"neighbors"`
	ExcludedCallsigns []string     `json:"excluded_callsigns"`
}

// LoadRegion reads and validates the region configuration file.
func LoadRegion(path string) (*region.Region, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read region file: %w", err)
	}
	return ParseRegion(b)
}

// ParseRegion builds a Region from raw region-file JSON.
func ParseRegion(b []byte) (*region.Region, error) {
	var rf RegionFile
	if err := json.Unmarshal(b, &rf); err != nil {
		return nil, fmt.Errorf("parse region file: %w", err)
	}

	boundary := make([]region.Point, len(rf.Boundary))
	for i, v := range rf.Boundary {
		boundary[i] = region.Point{Lat: v[0], Lng: v[1]}
	}

	r, err := region.New(boundary, rf.Airports, rf.Positions, rf.Neighbors, rf.ExcludedCallsigns)
	if err != nil {
		return nil, fmt.Errorf("invalid region config: %w", err)
	}
	return r, nil
}
