package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/zauartcc/datafeed/config"
)

type DB struct {
	conn *sql.DB
}

// Open connects to Postgres and ensures the schema exists. A failure
// here is fatal to the process; the feed cannot run without storage.
func Open(cfg config.Env) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}
	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	d := &DB{conn: conn}
	if err = d.createTables(); err != nil {
		return nil, fmt.Errorf("error creating tables: %v", err)
	}
	return d, nil
}

func (d *DB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS pilots_online (
			id SERIAL PRIMARY KEY,
			cid INTEGER NOT NULL,
			name VARCHAR(255) NOT NULL,
			callsign VARCHAR(255) NOT NULL,
			aircraft VARCHAR(255),
			dep VARCHAR(4),
			dest VARCHAR(4),
			code INTEGER NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lng DOUBLE PRECISION NOT NULL,
			altitude INTEGER NOT NULL,
			heading INTEGER NOT NULL,
			speed INTEGER NOT NULL,
			planned_cruise VARCHAR(10),
			route TEXT,
			remarks TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS controllers_online (
			id SERIAL PRIMARY KEY,
			cid INTEGER NOT NULL,
			name VARCHAR(255) NOT NULL,
			rating INTEGER NOT NULL,
			position VARCHAR(255) NOT NULL,
			logon_time TIMESTAMP WITH TIME ZONE NOT NULL,
			atis TEXT,
			frequency VARCHAR(10)
		)`,
		`CREATE TABLE IF NOT EXISTS controller_sessions (
			id BIGSERIAL PRIMARY KEY,
			cid INTEGER NOT NULL,
			position VARCHAR(255) NOT NULL,
			start_time TIMESTAMP WITH TIME ZONE NOT NULL,
			end_time TIMESTAMP WITH TIME ZONE NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'open',
			close_reason VARCHAR(32),
			UNIQUE (cid, start_time)
		)`,
		`CREATE TABLE IF NOT EXISTS pireps (
			id SERIAL PRIMARY KEY,
			report_time TIMESTAMP WITH TIME ZONE NOT NULL,
			location VARCHAR(8),
			aircraft VARCHAR(32),
			flight_level VARCHAR(8),
			sky_cond VARCHAR(64),
			turbulence VARCHAR(64),
			icing VARCHAR(64),
			vis VARCHAR(16),
			temp VARCHAR(8),
			wind VARCHAR(16),
			urgent BOOLEAN NOT NULL DEFAULT false,
			raw TEXT NOT NULL,
			manual BOOLEAN NOT NULL DEFAULT false,
			UNIQUE (report_time, raw)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_pilots_online_callsign ON pilots_online(callsign)`,
		`CREATE INDEX IF NOT EXISTS idx_controllers_online_position ON controllers_online(position)`,
		`CREATE INDEX IF NOT EXISTS idx_controller_sessions_cid ON controller_sessions(cid)`,
		`CREATE INDEX IF NOT EXISTS idx_controller_sessions_status ON controller_sessions(status)`,
		`CREATE INDEX IF NOT EXISTS idx_pireps_report_time ON pireps(report_time)`,
	}

	for _, query := range queries {
		if _, err := d.conn.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}
