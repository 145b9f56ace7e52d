package service

import (
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// Services groups the backend use cases handed to the HTTP handlers.
type Services struct {
	AuthService    AuthService
	FolderService  RecordService[*models.Folder]
	NoteService    RecordService[*models.Note]
	BinaryService  BinaryService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, storages, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		FolderService:  NewRecordService(models.KindFolder, storages.Folders, logger, NewRecordValidationWrapper[*models.Folder]()),
		NoteService:    NewRecordService(models.KindNote, storages.Notes, logger, NewRecordValidationWrapper[*models.Note]()),
		BinaryService:  NewBinaryService(storages.Notes, storages.Binaries, logger),
		AppInfoService: appInfo,
	}, nil
}
