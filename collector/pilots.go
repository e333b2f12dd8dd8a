package collector

import (
	"hash/fnv"
	"log"
	"strconv"
	"strings"

	"github.com/zauartcc/datafeed/models"
	"github.com/zauartcc/datafeed/types"
)

// processPilots filters the global pilot list down to the region,
// persists the surviving rows, refreshes each pilot's live record, and
// reconciles membership. Returns the number of pilots in region.
func (c *Collector) processPilots(pilots []types.Pilot) int {
	current := []string{}
	for _, p := range pilots {
		if !c.region.IsRelevantPilot(p) {
			continue
		}

		rec := pilotRecord(p)
		if err := c.db.InsertPilot(rec); err != nil {
			log.Printf("Error inserting pilot %s: %v", p.Callsign, err)
			continue
		}
		current = append(current, p.Callsign)

		c.store.SetFields("PILOT:"+p.Callsign, map[string]string{
			"callsign":    p.Callsign,
			"lat":         strconv.FormatFloat(p.Latitude, 'f', -1, 64),
			"lng":         strconv.FormatFloat(p.Longitude, 'f', -1, 64),
			"speed":       strconv.Itoa(p.Groundspeed),
			"heading":     strconv.Itoa(p.Heading),
			"altitude":    strconv.Itoa(p.Altitude),
			"cruise":      rec.PlannedCruise,
			"destination": rec.Dest,
		}, c.liveTTL())
	}

	c.reconcile(keyPilots, "PILOT", current)
	return len(current)
}

func pilotRecord(p types.Pilot) models.PilotOnline {
	rec := models.PilotOnline{
		CID:      p.CID,
		Name:     p.Name,
		Callsign: p.Callsign,
		Code:     displayCode(p.Callsign),
		Lat:      p.Latitude,
		Lng:      p.Longitude,
		Altitude: p.Altitude,
		Heading:  p.Heading,
		Speed:    p.Groundspeed,
	}
	if fp := p.FlightPlan; fp != nil {
		rec.Aircraft = fp.AircraftFaa
		rec.Dep = fp.Departure
		rec.Dest = fp.Arrival
		rec.PlannedCruise = normalizeCruise(fp.Altitude)
		rec.Route = fp.Route
		rec.Remarks = fp.Remarks
	}
	return rec
}

// normalizeCruise expands a flight-level altitude to feet: "FL350"
// becomes "35000". Plain values pass through unchanged.
func normalizeCruise(altitude string) string {
	if strings.Contains(altitude, "FL") {
		return strings.ReplaceAll(altitude, "FL", "") + "00"
	}
	return altitude
}

// displayCode derives the ephemeral 3-digit display code from the
// callsign, so a callsign keeps its code across cycles.
func displayCode(callsign string) int {
	h := fnv.New32a()
	h.Write([]byte(callsign))
	return int(h.Sum32()%899) + 101
}
