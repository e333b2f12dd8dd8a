// Package pireps ingests the aviationweather.gov aircraft-report feed
// on its own cadence: age out automatic reports, fetch, geofence, and
// persist the pilot reports for the region.
package pireps

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/zauartcc/datafeed/config"
	"github.com/zauartcc/datafeed/models"
	"github.com/zauartcc/datafeed/region"
	"github.com/zauartcc/datafeed/types"
	"golang.org/x/sync/semaphore"
)

// Admitted report types; everything else in the feed (AIREPs and the
// like) is dropped silently.
const (
	typePirep       = "PIREP"
	typeUrgentPirep = "Urgent PIREP"
)

// Database is the persistence surface the ingester needs.
type Database interface {
	InsertPirep(models.Pirep) error
	PurgeAutomaticPireps(cutoff time.Time) (int64, error)
}

type Ingester struct {
	url       string
	retention time.Duration
	region    *region.Region
	db        Database
	client    *http.Client
	sem       *semaphore.Weighted
	now       func() time.Time
}

func New(cfg config.Env, r *region.Region, database Database) *Ingester {
	return &Ingester{
		url:       cfg.AirepURL,
		retention: cfg.PirepRetention,
		region:    r,
		db:        database,
		client:    &http.Client{Timeout: 30 * time.Second},
		sem:       semaphore.NewWeighted(1),
		now:       time.Now,
	}
}

// Run executes one ingestion cycle per trigger until the context is
// cancelled.
func (i *Ingester) Run(ctx context.Context, trigger <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-trigger:
			if err := i.Poll(ctx); err != nil {
				log.Printf("Error ingesting PIREPs: %v", err)
			}
		}
	}
}

// Poll runs one ingestion cycle: purge aged automatic reports, then
// fetch and admit the current batch. One malformed report does not
// abort the rest of the batch.
func (i *Ingester) Poll(ctx context.Context) error {
	if !i.sem.TryAcquire(1) {
		log.Printf("Previous PIREP cycle still running, skipping")
		return nil
	}
	defer i.sem.Release(1)

	cutoff := i.now().UTC().Add(-i.retention)
	if _, err := i.db.PurgeAutomaticPireps(cutoff); err != nil {
		return fmt.Errorf("error purging aged reports: %v", err)
	}

	feed, err := i.fetch(ctx)
	if err != nil {
		return fmt.Errorf("error fetching report feed: %v", err)
	}

	admitted := 0
	for _, feature := range feed.Features {
		rec, ok := i.admit(feature)
		if !ok {
			continue
		}
		if err := i.db.InsertPirep(rec); err != nil {
			log.Printf("Error inserting PIREP %q: %v", rec.Raw, err)
			continue
		}
		admitted++
	}

	log.Printf("PIREP cycle complete: %d reports admitted", admitted)
	return nil
}

// admit decides whether one feed feature becomes a stored report and
// builds the normalized record.
func (i *Ingester) admit(feature types.AirepFeature) (models.Pirep, bool) {
	props := feature.Properties
	if props.AirepType != typePirep && props.AirepType != typeUrgentPirep {
		return models.Pirep{}, false
	}
	if len(feature.Geometry.Coordinates) < 2 {
		return models.Pirep{}, false
	}

	// The feed stores the pair in GeoJSON order, [lng, lat]; swap it
	// here, at the ingestion boundary, before any geometry test.
	lat := feature.Geometry.Coordinates[1]
	lng := feature.Geometry.Coordinates[0]
	if !i.region.Contains(lat, lng) {
		return models.Pirep{}, false
	}

	location := props.RawOb
	if len(location) > 3 {
		location = location[:3]
	}

	visibility := ""
	if feature.Visibility != nil {
		visibility = feature.Visibility.Text
	}

	return models.Pirep{
		ReportTime:  i.parseObsTime(props.ObsTime),
		Location:    location,
		Aircraft:    props.AcType,
		FlightLevel: props.FltLvl,
		SkyCond:     formatSky(props.CloudCvg1, props.Bas1, props.Top1),
		Turbulence:  formatTurbulence(props.TbInt1, props.TbFreq1, props.TbType1),
		Icing:       formatIcing(props.IcgInt1, props.IcgType1),
		Visibility:  visibility,
		Temp:        props.Temp.String(),
		Wind:        formatWind(props.Wdir, props.Wspd),
		Urgent:      props.AirepType == typeUrgentPirep,
		Raw:         props.RawOb,
		Manual:      false,
	}, true
}

// parseObsTime falls back to the fetch time when the feed's timestamp
// is missing or malformed.
func (i *Ingester) parseObsTime(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return i.now().UTC()
}

func (i *Ingester) fetch(ctx context.Context) (*types.AirepFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("report feed returned status %d", resp.StatusCode)
	}

	var feed types.AirepFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, err
	}
	return &feed, nil
}
