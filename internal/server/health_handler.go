// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import "net/http"

// HandleHealth reports liveness for load balancers and the watchdog
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
