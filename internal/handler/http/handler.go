package http

import (
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

// Handler serves the REST API of the note backend.
type Handler struct {
	services *service.Services
	hasher   *utils.Hasher

	folders *recordRoutes[*models.Folder]
	notes   *recordRoutes[*models.Note]

	logger *logger.Logger
}

// NewHandler builds the handler. Body signatures are checked and produced
// only when cfg.HashKey is set.
func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hasher:   utils.NewHasher(cfg.HashKey),
		folders:  newRecordRoutes(models.KindFolder, services.FolderService),
		notes:    newRecordRoutes(models.KindNote, services.NoteService),
		logger:   logger,
	}
}
