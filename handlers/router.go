package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(g *Gateway, staticDir string) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/ws", g.WsHandler)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")

	r.HandleFunc("/api/stats", g.Stats).Methods("GET")
	r.HandleFunc("/api/rooms/{roomID}", g.RoomStats).Methods("GET")

	// Client bundle.
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	return r
}
