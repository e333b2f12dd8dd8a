package db

import (
	"time"

	"github.com/zauartcc/datafeed/models"
)

// InsertPirep stores an admitted report. Reports still present in the
// feed are re-fetched every cycle; the (report_time, raw) key makes
// the re-insert a no-op instead of a duplicate.
func (d *DB) InsertPirep(p models.Pirep) error {
	_, err := d.conn.Exec(`
		INSERT INTO pireps (
			report_time, location, aircraft, flight_level,
			sky_cond, turbulence, icing, vis, temp, wind,
			urgent, raw, manual
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (report_time, raw) DO NOTHING
	`, p.ReportTime, p.Location, p.Aircraft, p.FlightLevel,
		p.SkyCond, p.Turbulence, p.Icing, p.Visibility, p.Temp, p.Wind,
		p.Urgent, p.Raw, p.Manual)
	return err
}

// PurgeAutomaticPireps deletes automatic reports older than cutoff.
// Manually entered reports are exempt from the age sweep.
func (d *DB) PurgeAutomaticPireps(cutoff time.Time) (int64, error) {
	res, err := d.conn.Exec(`
		DELETE FROM pireps WHERE manual = false AND report_time <= $1
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (d *DB) RecentPireps(limit int) ([]models.Pirep, error) {
	rows, err := d.conn.Query(`
		SELECT report_time, location, aircraft, flight_level,
			sky_cond, turbulence, icing, vis, temp, wind,
			urgent, raw, manual
		FROM pireps
		ORDER BY report_time DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.Pirep
	for rows.Next() {
		var p models.Pirep
		if err := rows.Scan(&p.ReportTime, &p.Location, &p.Aircraft, &p.FlightLevel,
			&p.SkyCond, &p.Turbulence, &p.Icing, &p.Visibility, &p.Temp, &p.Wind,
			&p.Urgent, &p.Raw, &p.Manual); err != nil {
			return nil, err
		}
		reports = append(reports, p)
	}
	return reports, rows.Err()
}
