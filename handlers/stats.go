package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/skyflap/skyflap-backend/models"
	"github.com/skyflap/skyflap-backend/responses"
	"github.com/skyflap/skyflap-backend/utils"
)

// Stats reports room and player counts across the server.
func (g *Gateway) Stats(w http.ResponseWriter, r *http.Request) {
	utils.HandleSuccess(w, models.SuccessResponse(g.directory.Stats()))
}

// RoomStats reports one room's summary.
func (g *Gateway) RoomStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID := vars["roomID"]
	if roomID == "" {
		utils.HandleError(w, responses.BadRequestError{Msg: "roomID is required."})
		return
	}

	stats, ok := g.directory.RoomStats(roomID)
	if !ok {
		utils.HandleError(w, responses.NotFoundError{Msg: "Room not found."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(stats))
}
