package api

import (
	"github.com/gorilla/mux"
	"github.com/zauartcc/datafeed/db"
	"github.com/zauartcc/datafeed/state"
	"github.com/zauartcc/datafeed/types"
)

// Collector is the ingest-side surface the API reads from.
type Collector interface {
	Stats() types.IngestStats
}

// NewRouter creates and configures a router with the read-only
// endpoints.
func NewRouter(collector Collector, database *db.DB, store state.Store) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(RateLimit)

	api.HandleFunc("/status", GetStatus(collector)).Methods("GET")
	api.HandleFunc("/pilots", GetPilots(database)).Methods("GET")
	api.HandleFunc("/pilots/{callsign}/live", GetPilotLive(store)).Methods("GET")
	api.HandleFunc("/controllers", GetControllers(database)).Methods("GET")
	api.HandleFunc("/sessions/{cid}", GetSessions(database)).Methods("GET")
	api.HandleFunc("/pireps", GetPireps(database)).Methods("GET")
	api.HandleFunc("/metar/{station}", GetMetar(store)).Methods("GET")

	return r
}
