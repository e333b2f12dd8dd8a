package pireps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/zauartcc/datafeed/config"
	"github.com/zauartcc/datafeed/models"
	"github.com/zauartcc/datafeed/region"
	"github.com/zauartcc/datafeed/types"
)

var fetchTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeDB struct {
	inserted    []models.Pirep
	insertErr   map[string]error
	purgeCutoff time.Time
}

func newFakeDB() *fakeDB {
	return &fakeDB{insertErr: make(map[string]error)}
}

func (d *fakeDB) InsertPirep(p models.Pirep) error {
	if err := d.insertErr[p.Raw]; err != nil {
		return err
	}
	d.inserted = append(d.inserted, p)
	return nil
}

func (d *fakeDB) PurgeAutomaticPireps(cutoff time.Time) (int64, error) {
	d.purgeCutoff = cutoff
	return 0, nil
}

func testRegion(t *testing.T) *region.Region {
	t.Helper()
	boundary := []region.Point{
		{Lat: 40, Lng: -90},
		{Lat: 40, Lng: -80},
		{Lat: 50, Lng: -80},
		{Lat: 50, Lng: -90},
	}
	r, err := region.New(boundary, []string{"KORD"}, []string{"ORD"}, nil, nil)
	if err != nil {
		t.Fatalf("region.New() error: %v", err)
	}
	return r
}

func newTestIngester(t *testing.T, database *fakeDB) *Ingester {
	t.Helper()
	cfg := config.Env{PirepRetention: 2 * time.Hour}
	i := New(cfg, testRegion(t), database)
	i.now = func() time.Time { return fetchTime }
	return i
}

// feature builds a feed feature for a report at (lat, lng). The feed
// carries the pair in GeoJSON order.
func feature(reportType string, lat, lng float64, raw string) types.AirepFeature {
	return types.AirepFeature{
		Geometry: types.AirepGeometry{Coordinates: []float64{lng, lat}},
		Properties: types.AirepProperties{
			AirepType: reportType,
			ObsTime:   "2024-03-01T11:45:00Z",
			RawOb:     raw,
			AcType:    "B738",
			FltLvl:    "350",
			Wdir:      270,
			Wspd:      15,
		},
	}
}

func TestAdmit(t *testing.T) {
	i := newTestIngester(t, newFakeDB())

	tests := []struct {
		name    string
		feature types.AirepFeature
		want    bool
	}{
		{"pilot report inside region", feature(typePirep, 45, -85, "ORD UA /OV ORD"), true},
		{"urgent report inside region", feature(typeUrgentPirep, 45, -85, "ORD UUA /OV ORD"), true},
		{"aircraft report rejected", feature("AIREP", 45, -85, "ARP UAL1"), false},
		{"outside region", feature(typePirep, 10, 10, "MIA UA /OV MIA"), false},
		{"missing coordinates", types.AirepFeature{Properties: types.AirepProperties{AirepType: typePirep}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := i.admit(tt.feature)
			if ok != tt.want {
				t.Fatalf("admit() = %v, want %v", ok, tt.want)
			}
			if !ok {
				return
			}
			if rec.Location != tt.feature.Properties.RawOb[:3] {
				t.Errorf("location = %q, want leading station of raw report", rec.Location)
			}
			if rec.Manual {
				t.Error("feed-sourced report flagged manual")
			}
		})
	}
}

func TestAdmitUrgency(t *testing.T) {
	i := newTestIngester(t, newFakeDB())

	rec, ok := i.admit(feature(typeUrgentPirep, 45, -85, "ORD UUA /OV ORD"))
	if !ok || !rec.Urgent {
		t.Errorf("urgent report admitted as (%v, urgent=%v), want (true, true)", ok, rec.Urgent)
	}

	rec, ok = i.admit(feature(typePirep, 45, -85, "ORD UA /OV ORD"))
	if !ok || rec.Urgent {
		t.Errorf("routine report admitted as (%v, urgent=%v), want (true, false)", ok, rec.Urgent)
	}
}

// The feed stores coordinates in GeoJSON order, [lng, lat]. A point
// whose pair only falls inside the region when read in that order
// proves the swap happens.
func TestAdmitCoordinateOrder(t *testing.T) {
	i := newTestIngester(t, newFakeDB())

	inRegion := types.AirepFeature{
		Geometry:   types.AirepGeometry{Coordinates: []float64{-85, 45}},
		Properties: types.AirepProperties{AirepType: typePirep, RawOb: "ORD UA"},
	}
	if _, ok := i.admit(inRegion); !ok {
		t.Error("GeoJSON-ordered pair inside region was rejected; coordinates were not swapped")
	}

	transposed := types.AirepFeature{
		Geometry:   types.AirepGeometry{Coordinates: []float64{45, -85}},
		Properties: types.AirepProperties{AirepType: typePirep, RawOb: "ORD UA"},
	}
	if _, ok := i.admit(transposed); ok {
		t.Error("pair read without the swap was admitted")
	}
}

func TestAdmitNormalization(t *testing.T) {
	i := newTestIngester(t, newFakeDB())

	f := feature(typePirep, 45, -85, "ORD UA /OV ORD")
	f.Properties.CloudCvg1 = "SCT"
	f.Properties.Bas1 = 45
	f.Properties.Top1 = 60
	f.Properties.TbInt1 = "MOD"
	f.Properties.TbType1 = "CHOP"
	f.Properties.IcgInt1 = "LGT"
	f.Properties.IcgType1 = "RIME"
	f.Properties.Temp = json.Number("-12")
	f.Visibility = &types.TextValue{Text: "10"}

	rec, ok := i.admit(f)
	if !ok {
		t.Fatal("admit() rejected a valid report")
	}
	if rec.SkyCond != "SCT 045-060" {
		t.Errorf("sky = %q, want SCT 045-060", rec.SkyCond)
	}
	if rec.Turbulence != "MOD CHOP" {
		t.Errorf("turbulence = %q, want MOD CHOP", rec.Turbulence)
	}
	if rec.Icing != "LGT RIME" {
		t.Errorf("icing = %q, want LGT RIME", rec.Icing)
	}
	if rec.Wind != "270@15" {
		t.Errorf("wind = %q, want 270@15", rec.Wind)
	}
	if rec.Temp != "-12" {
		t.Errorf("temp = %q, want -12", rec.Temp)
	}
	if rec.Visibility != "10" {
		t.Errorf("visibility = %q, want 10", rec.Visibility)
	}
	if want := time.Date(2024, 3, 1, 11, 45, 0, 0, time.UTC); !rec.ReportTime.Equal(want) {
		t.Errorf("report time = %v, want %v", rec.ReportTime, want)
	}
}

func TestParseObsTimeFallback(t *testing.T) {
	i := newTestIngester(t, newFakeDB())
	if got := i.parseObsTime("not a timestamp"); !got.Equal(fetchTime) {
		t.Errorf("parseObsTime fallback = %v, want fetch time %v", got, fetchTime)
	}
}

func TestPoll(t *testing.T) {
	feed := types.AirepFeed{
		Features: []types.AirepFeature{
			feature(typePirep, 45, -85, "ORD UA /OV ORD"),
			feature(typePirep, 44, -86, "MDW UA /OV MDW"),
			feature(typePirep, 10, 10, "MIA UA /OV MIA"),
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(feed)
	}))
	defer srv.Close()

	database := newFakeDB()
	database.insertErr["MDW UA /OV MDW"] = errors.New("constraint violation")
	i := newTestIngester(t, database)
	i.url = srv.URL

	if err := i.Poll(context.Background()); err != nil {
		t.Fatalf("Poll() error: %v", err)
	}

	if want := fetchTime.Add(-2 * time.Hour); !database.purgeCutoff.Equal(want) {
		t.Errorf("purge cutoff = %v, want %v", database.purgeCutoff, want)
	}

	// One failed insert is skipped; the in-region survivor lands.
	if len(database.inserted) != 1 || database.inserted[0].Raw != "ORD UA /OV ORD" {
		t.Errorf("inserted = %+v, want just the ORD report", database.inserted)
	}
}

func TestPollFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	database := newFakeDB()
	i := newTestIngester(t, database)
	i.url = srv.URL

	if err := i.Poll(context.Background()); err == nil {
		t.Fatal("Poll() returned nil for a failed fetch")
	}
	if len(database.inserted) != 0 {
		t.Errorf("inserted %d reports after failed fetch", len(database.inserted))
	}
}
