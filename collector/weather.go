package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/zauartcc/datafeed/types"
)

// processMetars fetches the METAR feed for the configured airports and
// stores the latest string per station. Entries are overwritten on the
// next cycle rather than expired.
func (c *Collector) processMetars(ctx context.Context) error {
	url := c.metarURL + strings.Join(c.region.Airports(), ",")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("metar feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	for _, metar := range strings.Split(strings.TrimSpace(string(body)), "\n") {
		if len(metar) < 4 {
			continue
		}
		c.store.Set("METAR:"+metar[:4], metar, 0)
	}
	return nil
}

// processAtis reconciles the text-ATIS connections for the region's
// airports. The ATIS body under ATIS:<airport> is written by another
// service; this side only refreshes its TTL while the connection is up
// and removes it when the connection drops. Returns the number of ATIS
// stations in region.
func (c *Collector) processAtis(connections []types.Controller) int {
	current := []string{}
	for _, a := range connections {
		if len(a.Callsign) < 4 {
			continue
		}
		airport := a.Callsign[:4]
		if !c.region.IsAirport(airport) {
			continue
		}
		current = append(current, airport)
		c.store.Expire("ATIS:"+airport, c.membershipTTL())
	}

	removed := c.reconcile(keyAtis, "ATIS", current)
	for _, airport := range removed {
		c.store.Delete("ATIS:" + airport)
	}
	return len(current)
}
