package handlers

import (
	"mediaforge/internal/jobs"
	"mediaforge/internal/orchestrator"
	"mediaforge/internal/pkg/logger"
	"mediaforge/internal/ports"
)

type Deps struct {
	Orch  *orchestrator.Orchestrator
	Store jobs.Store
	SP    ports.StorageProvider
	Log   *logger.Logger
}

type Handler struct {
	orch  *orchestrator.Orchestrator
	store jobs.Store
	sp    ports.StorageProvider
	log   *logger.Logger
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	return &Handler{
		orch:  d.Orch,
		store: d.Store,
		sp:    d.SP,
		log:   log.WithComponent("httpapi"),
	}
}
