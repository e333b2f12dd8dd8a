// Package collector runs the snapshot cycle: fetch the global VATSIM
// feed, reduce it to the configured region, diff against the previous
// cycle's membership, and maintain controller session records.
package collector

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/zauartcc/datafeed/config"
	"github.com/zauartcc/datafeed/models"
	"github.com/zauartcc/datafeed/region"
	"github.com/zauartcc/datafeed/state"
	"github.com/zauartcc/datafeed/types"
	"golang.org/x/sync/semaphore"
)

// State store keys and channels. Consumers subscribe to the
// <class>:UPDATE / <class>:DELETE channels and read the membership
// keys for the latest snapshot.
const (
	keyPilots      = "pilots"
	keyControllers = "controllers"
	keyAtis        = "atis"
	keyNeighbors   = "neighbors"

	queueControllerOnline  = "queue:controller:online"
	queueControllerOffline = "queue:controller:offline"
)

// Sessions not refreshed within this many polls are closed by the
// sweep.
const staleSessionPolls = 3

// Database is the persistence surface the collector needs.
type Database interface {
	ClearOnline() error
	InsertPilot(models.PilotOnline) error
	InsertController(models.ControllerOnline) error
	SessionExists(cid int, start time.Time) (bool, error)
	CreateSession(models.ControllerSession) error
	ExtendSession(cid int, start, end time.Time) error
	CloseStaleSessions(cutoff time.Time) (int64, error)
}

// Notifier receives session-open notifications.
type Notifier interface {
	ReportSession(cid int) error
}

type Collector struct {
	dataURL  string
	metarURL string
	poll     time.Duration
	region   *region.Region
	store    state.Store
	db       Database
	stats    Notifier
	client   *http.Client
	sem      *semaphore.Weighted
	now      func() time.Time

	mu     sync.Mutex
	ingest types.IngestStats
}

func New(cfg config.Env, r *region.Region, store state.Store, database Database, notifier Notifier) *Collector {
	return &Collector{
		dataURL:  cfg.VatsimDataURL,
		metarURL: cfg.MetarURL,
		poll:     cfg.PollInterval,
		region:   r,
		store:    store,
		db:       database,
		stats:    notifier,
		client:   &http.Client{Timeout: 10 * time.Second},
		sem:      semaphore.NewWeighted(1),
		now:      time.Now,
		ingest:   types.IngestStats{StartTime: time.Now()},
	}
}

// Run executes one cycle per trigger until the context is cancelled.
// The trigger source is injected so tests can fire cycles directly.
func (c *Collector) Run(ctx context.Context, trigger <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-trigger:
			if err := c.Poll(ctx); err != nil {
				log.Printf("Error collecting data: %v", err)
			}
		}
	}
}

// Poll runs one collection cycle. A trigger arriving while a cycle is
// still in flight is dropped; the diff-then-replace sequence is not
// safe under concurrent writers. A fetch failure aborts the cycle
// before any stored state is touched, since a failed fetch is not
// evidence of absence.
func (c *Collector) Poll(ctx context.Context) error {
	if !c.sem.TryAcquire(1) {
		log.Printf("Previous collection cycle still running, skipping")
		c.mu.Lock()
		c.ingest.SkippedCycles++
		c.mu.Unlock()
		return nil
	}
	defer c.sem.Release(1)

	data, err := c.fetchData(ctx)
	if err != nil {
		return fmt.Errorf("error fetching data: %v", err)
	}

	if err := c.db.ClearOnline(); err != nil {
		return fmt.Errorf("error clearing online tables: %v", err)
	}

	pilots := c.processPilots(data.Pilots)
	controllers := c.processControllers(data.Controllers)
	c.sweepSessions()
	if err := c.processMetars(ctx); err != nil {
		log.Printf("Error fetching METARs: %v", err)
	}
	atis := c.processAtis(data.Atis)

	c.mu.Lock()
	c.ingest.LastUpdate = c.now()
	c.ingest.TotalCycles++
	c.ingest.ActivePilots = pilots
	c.ingest.ActiveControllers = controllers
	c.ingest.ActiveAtis = atis
	c.mu.Unlock()

	log.Printf("Cycle complete: %d pilots, %d controllers, %d ATIS in region", pilots, controllers, atis)
	return nil
}

func (c *Collector) Stats() types.IngestStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ingest
}

func (c *Collector) fetchData(ctx context.Context) (*types.VatsimData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.dataURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var data types.VatsimData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// membershipTTL outlives the poll interval by enough that one missed
// cycle does not fire a spurious remove/add pair.
func (c *Collector) membershipTTL() time.Duration {
	return 4*c.poll + 5*time.Second
}

// liveTTL covers the per-callsign live records consumers poll less
// aggressively.
func (c *Collector) liveTTL() time.Duration {
	return 20 * c.poll
}
