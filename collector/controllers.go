package collector

import (
	"log"
	"strings"

	"github.com/goccy/go-json"
	"github.com/zauartcc/datafeed/models"
	"github.com/zauartcc/datafeed/types"
)

// processControllers filters the global controller list to local
// positions, persists the surviving rows, drives session tracking, and
// reconciles membership. Neighboring-center presence rides along on
// the same pass. Returns the number of controllers in region.
func (c *Collector) processControllers(controllers []types.Controller) int {
	current := []string{}
	neighbors := []string{}

	for _, ctrl := range controllers {
		if id, ok := c.region.NeighborCenter(ctrl.Callsign); ok {
			neighbors = append(neighbors, id)
		}

		if !c.region.IsRelevantController(ctrl) {
			continue
		}

		rec := models.ControllerOnline{
			CID:       ctrl.CID,
			Name:      ctrl.Name,
			Rating:    ctrl.Rating,
			Position:  ctrl.Callsign,
			LogonTime: ctrl.LogonTime,
			Atis:      strings.Join(ctrl.TextAtis, " - "),
			Frequency: ctrl.Frequency,
		}
		if err := c.db.InsertController(rec); err != nil {
			log.Printf("Error inserting controller %s: %v", ctrl.Callsign, err)
			continue
		}
		current = append(current, ctrl.Callsign)

		c.trackSession(ctrl, rec)
	}

	removed := c.reconcile(keyControllers, "CONTROLLER", current)
	for _, callsign := range removed {
		payload, err := json.Marshal(callsign)
		if err != nil {
			continue
		}
		c.store.Enqueue(queueControllerOffline, payload)
	}

	c.store.Set(keyNeighbors, strings.Join(neighbors, "|"), c.membershipTTL())
	return len(current)
}
