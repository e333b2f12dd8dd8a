package collector

import (
	"errors"
	"testing"

	"github.com/zauartcc/datafeed/types"
)

func TestNormalizeCruise(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FL350", "35000"},
		{"FL090", "09000"},
		{"11000", "11000"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normalizeCruise(tt.in); got != tt.want {
				t.Errorf("normalizeCruise(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDisplayCode(t *testing.T) {
	for _, callsign := range []string{"AAL1", "UAL232", "N123AB"} {
		code := displayCode(callsign)
		if code < 101 || code > 999 {
			t.Errorf("displayCode(%q) = %d, outside [101, 999]", callsign, code)
		}
		if again := displayCode(callsign); again != code {
			t.Errorf("displayCode(%q) not deterministic: %d then %d", callsign, code, again)
		}
	}
}

func TestProcessPilots(t *testing.T) {
	store := newFakeStore()
	database := newFakeDB()
	c := newTestCollector(t, store, database, nil)

	pilots := []types.Pilot{
		{
			CID: 100, Callsign: "AAL1", Latitude: 45, Longitude: -85,
			Altitude: 35000, Heading: 270, Groundspeed: 450,
			FlightPlan: &types.FlightPlan{Departure: "KJFK", Arrival: "KORD", Altitude: "FL350", AircraftFaa: "B738"},
		},
		{CID: 101, Callsign: "FAR1", Latitude: 10, Longitude: 10},
	}

	if got := c.processPilots(pilots); got != 1 {
		t.Fatalf("processPilots() = %d pilots in region, want 1", got)
	}

	if len(database.pilots) != 1 {
		t.Fatalf("persisted %d pilots, want 1", len(database.pilots))
	}
	rec := database.pilots[0]
	if rec.PlannedCruise != "35000" || rec.Aircraft != "B738" || rec.Dest != "KORD" {
		t.Errorf("pilot record = %+v, want normalized flight plan fields", rec)
	}

	fields, ok := store.fields["PILOT:AAL1"]
	if !ok {
		t.Fatal("live record for AAL1 missing")
	}
	if fields["cruise"] != "35000" || fields["destination"] != "KORD" || fields["speed"] != "450" {
		t.Errorf("live record fields = %v", fields)
	}
	if _, ok := store.fields["PILOT:FAR1"]; ok {
		t.Error("out-of-region pilot got a live record")
	}
}

func TestProcessPilotsInsertFailure(t *testing.T) {
	store := newFakeStore()
	database := newFakeDB()
	database.pilotErr["AAL1"] = errors.New("constraint violation")
	c := newTestCollector(t, store, database, nil)

	pilots := []types.Pilot{
		{CID: 100, Callsign: "AAL1", Latitude: 45, Longitude: -85},
		{CID: 101, Callsign: "UAL2", Latitude: 44, Longitude: -86},
	}

	// One failed insert is skipped; the rest of the batch continues.
	if got := c.processPilots(pilots); got != 1 {
		t.Fatalf("processPilots() = %d, want 1", got)
	}
	if got := store.values[keyPilots]; got != "UAL2" {
		t.Errorf("membership = %q, want UAL2", got)
	}
}
