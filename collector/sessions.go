package collector

import (
	"log"

	"github.com/goccy/go-json"
	"github.com/zauartcc/datafeed/models"
	"github.com/zauartcc/datafeed/types"
)

// trackSession opens or extends the session for one observed
// controller. Sessions are keyed by (cid, logon time): the same cid
// reappearing with a different logon time always starts a new session,
// never extends an old one. The feed's reported logon time is
// authoritative.
func (c *Collector) trackSession(ctrl types.Controller, rec models.ControllerOnline) {
	exists, err := c.db.SessionExists(ctrl.CID, ctrl.LogonTime)
	if err != nil {
		log.Printf("Error looking up session for CID %d: %v", ctrl.CID, err)
		return
	}

	now := c.now().UTC()
	if exists {
		if err := c.db.ExtendSession(ctrl.CID, ctrl.LogonTime, now); err != nil {
			log.Printf("Error extending session for CID %d: %v", ctrl.CID, err)
		}
		return
	}

	session := models.ControllerSession{
		CID:       ctrl.CID,
		Position:  ctrl.Callsign,
		StartTime: ctrl.LogonTime,
		EndTime:   now,
		Status:    models.SessionOpen,
	}
	if err := c.db.CreateSession(session); err != nil {
		log.Printf("Error creating session for CID %d: %v", ctrl.CID, err)
		return
	}
	log.Printf("Session opened for CID %d on %s", ctrl.CID, ctrl.Callsign)

	if c.stats != nil {
		if err := c.stats.ReportSession(ctrl.CID); err != nil {
			log.Printf("Error reporting session for CID %d: %v", ctrl.CID, err)
		}
	}

	payload, err := json.Marshal([]models.ControllerOnline{rec})
	if err != nil {
		log.Printf("Error encoding session event for CID %d: %v", ctrl.CID, err)
		return
	}
	c.store.Enqueue(queueControllerOnline, payload)
}

// sweepSessions closes open sessions whose end timestamp stopped
// advancing, i.e. the controller has been gone for several polls.
func (c *Collector) sweepSessions() {
	cutoff := c.now().UTC().Add(-staleSessionPolls * c.poll)
	n, err := c.db.CloseStaleSessions(cutoff)
	if err != nil {
		log.Printf("Error closing stale sessions: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Closed %d stale controller sessions", n)
	}
}
