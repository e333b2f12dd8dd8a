package api

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/zauartcc/datafeed/db"
	"github.com/zauartcc/datafeed/state"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func GetStatus(collector Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, collector.Stats())
	}
}

func GetPilots(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pilots, err := database.OnlinePilots()
		if err != nil {
			http.Error(w, "Failed to query pilots", http.StatusInternalServerError)
			return
		}
		writeJSON(w, pilots)
	}
}

func GetPilotLive(store state.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callsign := mux.Vars(r)["callsign"]
		fields, ok := store.GetFields("PILOT:" + callsign)
		if !ok {
			http.Error(w, "Pilot not found", http.StatusNotFound)
			return
		}
		writeJSON(w, fields)
	}
}

func GetControllers(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		controllers, err := database.OnlineControllers()
		if err != nil {
			http.Error(w, "Failed to query controllers", http.StatusInternalServerError)
			return
		}
		writeJSON(w, controllers)
	}
}

func GetSessions(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cid, err := strconv.Atoi(mux.Vars(r)["cid"])
		if err != nil {
			http.Error(w, "Invalid CID", http.StatusBadRequest)
			return
		}
		sessions, err := database.SessionsForCID(cid)
		if err != nil {
			http.Error(w, "Failed to query sessions", http.StatusInternalServerError)
			return
		}
		writeJSON(w, sessions)
	}
}

func GetPireps(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 100
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}
		reports, err := database.RecentPireps(limit)
		if err != nil {
			http.Error(w, "Failed to query reports", http.StatusInternalServerError)
			return
		}
		writeJSON(w, reports)
	}
}

func GetMetar(store state.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		station := mux.Vars(r)["station"]
		metar, ok := store.Get("METAR:" + station)
		if !ok {
			http.Error(w, "No METAR for station", http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]string{"station": station, "metar": metar})
	}
}
