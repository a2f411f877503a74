package handler

import (
	"govlens/backend/internal/complaint"
	"govlens/backend/internal/feed"
	"govlens/backend/internal/storage"
)

// Handler wires the HTTP surface to the intake service, the lifecycle engine
// and the live feed hub.
type Handler struct {
	Store   *complaint.Store
	Intake  *complaint.Service
	Engine  *complaint.Engine
	Hub     *feed.Hub
	Storage storage.Storage
}

func NewHandler(store *complaint.Store, intake *complaint.Service, engine *complaint.Engine, hub *feed.Hub, s storage.Storage) *Handler {
	return &Handler{Store: store, Intake: intake, Engine: engine, Hub: hub, Storage: s}
}
