package db

import "github.com/zauartcc/datafeed/models"

// ClearOnline drops the previous cycle's pilot and controller rows.
// The online tables hold only the current cycle's view.
func (d *DB) ClearOnline() error {
	if _, err := d.conn.Exec(`DELETE FROM pilots_online`); err != nil {
		return err
	}
	_, err := d.conn.Exec(`DELETE FROM controllers_online`)
	return err
}

func (d *DB) InsertPilot(p models.PilotOnline) error {
	_, err := d.conn.Exec(`
		INSERT INTO pilots_online (
			cid, name, callsign, aircraft, dep, dest, code,
			lat, lng, altitude, heading, speed,
			planned_cruise, route, remarks
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, p.CID, p.Name, p.Callsign, p.Aircraft, p.Dep, p.Dest, p.Code,
		p.Lat, p.Lng, p.Altitude, p.Heading, p.Speed,
		p.PlannedCruise, p.Route, p.Remarks)
	return err
}

func (d *DB) InsertController(c models.ControllerOnline) error {
	_, err := d.conn.Exec(`
		INSERT INTO controllers_online (
			cid, name, rating, position, logon_time, atis, frequency
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.CID, c.Name, c.Rating, c.Position, c.LogonTime, c.Atis, c.Frequency)
	return err
}

func (d *DB) OnlinePilots() ([]models.PilotOnline, error) {
	rows, err := d.conn.Query(`
		SELECT cid, name, callsign, aircraft, dep, dest, code,
			lat, lng, altitude, heading, speed,
			planned_cruise, route, remarks
		FROM pilots_online ORDER BY callsign
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pilots []models.PilotOnline
	for rows.Next() {
		var p models.PilotOnline
		if err := rows.Scan(&p.CID, &p.Name, &p.Callsign, &p.Aircraft, &p.Dep, &p.Dest, &p.Code,
			&p.Lat, &p.Lng, &p.Altitude, &p.Heading, &p.Speed,
			&p.PlannedCruise, &p.Route, &p.Remarks); err != nil {
			return nil, err
		}
		pilots = append(pilots, p)
	}
	return pilots, rows.Err()
}

func (d *DB) OnlineControllers() ([]models.ControllerOnline, error) {
	rows, err := d.conn.Query(`
		SELECT cid, name, rating, position, logon_time, atis, frequency
		FROM controllers_online ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var controllers []models.ControllerOnline
	for rows.Next() {
		var c models.ControllerOnline
		if err := rows.Scan(&c.CID, &c.Name, &c.Rating, &c.Position, &c.LogonTime, &c.Atis, &c.Frequency); err != nil {
			return nil, err
		}
		controllers = append(controllers, c)
	}
	return controllers, rows.Err()
}
