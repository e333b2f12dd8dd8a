package models

import "time"

// Pirep is a pilot weather report admitted by the geofence. Automatic
// reports age out after the retention window; manual reports persist
// until removed by hand.
type Pirep struct {
	ReportTime  time.Time `json:"report_time"`
	Location    string    `json:"location"`
	Aircraft    string    `json:"aircraft"`
	FlightLevel string    `json:"flight_level"`
	SkyCond     string    `json:"sky_cond"`
	Turbulence  string    `json:"turbulence"`
	Icing       string    `json:"icing"`
	Visibility  string    `json:"vis"`
	Temp        string    `json:"temp"`
	Wind        string    `json:"wind"`
	Urgent      bool      `json:"urgent"`
	Raw         string    `json:"raw"`
	Manual      bool      `json:"manual"`
}
