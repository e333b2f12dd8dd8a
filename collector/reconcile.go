package collector

import "strings"

// previous returns the prior cycle's membership for key. An absent or
// empty value is treated as an empty set: after a restart everything
// present is re-announced rather than anything being reported removed.
func (c *Collector) previous(key string) []string {
	raw, ok := c.store.Get(key)
	if !ok || raw == "" {
		return nil
	}
	return strings.Split(raw, "|")
}

// reconcile diffs current against the stored membership for one entity
// class. One DELETE is published per member that disappeared and one
// UPDATE per member present this cycle; every present member is
// republished so consumers get fresh volatile fields, not just new
// arrivals. All DELETEs are published before the membership key is
// replaced, so a consumer that saw a removal never reads a snapshot
// still listing that member. Returns the removed members.
func (c *Collector) reconcile(key, channel string, current []string) []string {
	currentSet := make(map[string]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}

	var removed []string
	for _, id := range c.previous(key) {
		if !currentSet[id] {
			removed = append(removed, id)
			c.store.Publish(channel+":DELETE", id)
		}
	}

	for _, id := range current {
		c.store.Publish(channel+":UPDATE", id)
	}

	c.store.Set(key, strings.Join(current, "|"), c.membershipTTL())
	return removed
}
