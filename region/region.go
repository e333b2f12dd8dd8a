// Package region implements the spatial filter for one ARTCC's
// airspace: a boundary polygon, an airport set, and the local
// controller position prefixes.
package region

import (
	"fmt"
	"strings"

	"github.com/zauartcc/datafeed/types"
)

// Point is a geographic coordinate.
type Point struct {
	Lat float64
	Lng float64
}

// Region is the static geofence configuration. Immutable once built.
type Region struct {
	boundary    []Point
	airportList []string
	airports    map[string]bool
	positions   map[string]bool
	neighbors   map[string]bool
	excluded    map[string]bool
}

func New(boundary []Point, airports, positions, neighbors, excluded []string) (*Region, error) {
	if len(boundary) < 3 {
		return nil, fmt.Errorf("boundary needs at least 3 vertices, got %d", len(boundary))
	}
	if len(airports) == 0 {
		return nil, fmt.Errorf("no airports configured")
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no local positions configured")
	}

	r := &Region{
		boundary:    boundary,
		airportList: airports,
		airports:    make(map[string]bool, len(airports)),
		positions:   make(map[string]bool, len(positions)),
		neighbors:   make(map[string]bool, len(neighbors)),
		excluded:    make(map[string]bool, len(excluded)),
	}
	for _, a := range airports {
		r.airports[a] = true
	}
	for _, p := range positions {
		r.positions[p] = true
	}
	for _, n := range neighbors {
		r.neighbors[n] = true
	}
	for _, e := range excluded {
		r.excluded[e] = true
	}
	return r, nil
}

// Contains reports whether the point lies inside the boundary polygon.
// Ray casting against a general simple polygon; points on an edge
// follow the half-open rule, so the lower-longitude side of the
// polygon counts as inside and the upper-longitude side does not.
func (r *Region) Contains(lat, lng float64) bool {
	inside := false
	pts := r.boundary
	for i := 0; i < len(pts); i++ {
		p0, p1 := pts[i], pts[(i+1)%len(pts)]
		if (p0.Lng <= lng && lng < p1.Lng) || (p1.Lng <= lng && lng < p0.Lng) {
			x := p0.Lat + (lng-p0.Lng)*(p1.Lat-p0.Lat)/(p1.Lng-p0.Lng)
			if x > lat {
				inside = !inside
			}
		}
	}
	return inside
}

// IsRelevantPilot reports whether a pilot belongs to the region:
// the flight plan departs or arrives at a configured airport, or the
// aircraft's present position is inside the boundary.
func (r *Region) IsRelevantPilot(p types.Pilot) bool {
	if p.FlightPlan != nil && (r.airports[p.FlightPlan.Departure] || r.airports[p.FlightPlan.Arrival]) {
		return true
	}
	return r.Contains(p.Latitude, p.Longitude)
}

// IsRelevantController reports whether a controller staffs a local
// position. Observer connections (facility 0) and callsigns on the
// exclusion list are rejected even when the prefix matches.
func (r *Region) IsRelevantController(c types.Controller) bool {
	if len(c.Callsign) < 3 {
		return false
	}
	if !r.positions[c.Callsign[:3]] {
		return false
	}
	if r.excluded[c.Callsign] {
		return false
	}
	return c.Facility != 0
}

// IsAirport reports whether the identifier is a configured airport.
func (r *Region) IsAirport(icao string) bool {
	return r.airports[icao]
}

// Airports returns the configured airport identifiers in file order.
func (r *Region) Airports() []string {
	return r.airportList
}

// NeighborCenter extracts the facility identifier when the callsign is
// a center position of a configured neighboring ARTCC (e.g. "ZMP_CTR").
func (r *Region) NeighborCenter(callsign string) (string, bool) {
	parts := strings.Split(callsign, "_")
	if len(parts) < 2 || parts[len(parts)-1] != "CTR" {
		return "", false
	}
	if !r.neighbors[parts[0]] {
		return "", false
	}
	return parts[0], true
}
