package db

import (
	"database/sql"
	"time"

	"github.com/zauartcc/datafeed/models"
)

// SessionExists reports whether a session row exists for the
// (cid, start time) pair the feed reported.
func (d *DB) SessionExists(cid int, start time.Time) (bool, error) {
	var id int64
	err := d.conn.QueryRow(`
		SELECT id FROM controller_sessions
		WHERE cid = $1 AND start_time = $2
	`, cid, start).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *DB) CreateSession(s models.ControllerSession) error {
	_, err := d.conn.Exec(`
		INSERT INTO controller_sessions (cid, position, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5)
	`, s.CID, s.Position, s.StartTime, s.EndTime, models.SessionOpen)
	return err
}

// ExtendSession advances the end timestamp of the session keyed by
// (cid, start time). A session the timeout sweep already closed is
// reopened: the controller is demonstrably still on the same
// connection, so the close was premature.
func (d *DB) ExtendSession(cid int, start, end time.Time) error {
	_, err := d.conn.Exec(`
		UPDATE controller_sessions
		SET end_time = $1, status = $2, close_reason = NULL
		WHERE cid = $3 AND start_time = $4
	`, end, models.SessionOpen, cid, start)
	return err
}

// CloseStaleSessions marks open sessions whose end timestamp has not
// advanced past cutoff as closed with a timeout reason, returning the
// number of sessions closed.
func (d *DB) CloseStaleSessions(cutoff time.Time) (int64, error) {
	res, err := d.conn.Exec(`
		UPDATE controller_sessions
		SET status = $1, close_reason = 'timeout'
		WHERE status = $2 AND end_time < $3
	`, models.SessionClosed, models.SessionOpen, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (d *DB) SessionsForCID(cid int) ([]models.ControllerSession, error) {
	rows, err := d.conn.Query(`
		SELECT cid, position, start_time, end_time, status, COALESCE(close_reason, '')
		FROM controller_sessions
		WHERE cid = $1
		ORDER BY start_time DESC
	`, cid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.ControllerSession
	for rows.Next() {
		var s models.ControllerSession
		if err := rows.Scan(&s.CID, &s.Position, &s.StartTime, &s.EndTime, &s.Status, &s.CloseReason); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
