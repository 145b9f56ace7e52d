package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// NewFolderSyncManager syncs folders. A folder that still carries the
// placeholder name and color and holds no live note never leaves the
// device.
func NewFolderSyncManager(server adapter.ServerAdapter, tx *TransactionManager, recovery *NetworkRecoveryManager) *EntitySyncManager[*models.Folder] {
	return newEntitySyncManager(entityHooks[*models.Folder]{
		kind:       models.KindFolder,
		remote:     server.Folders(),
		local:      func(tx *SyncTransaction) store.LocalTable[*models.Folder] { return tx.Folders() },
		skipUpload: isInvalidDefaultFolder,
	}, tx, recovery)
}

// NewNoteSyncManager syncs notes and, when enabled, their binary content.
func NewNoteSyncManager(server adapter.ServerAdapter, tx *TransactionManager, recovery *NetworkRecoveryManager) *EntitySyncManager[*models.Note] {
	return newEntitySyncManager(entityHooks[*models.Note]{
		kind:   models.KindNote,
		remote: server.Notes(),
		local:  func(tx *SyncTransaction) store.LocalTable[*models.Note] { return tx.Notes() },
		uploadBinary: func(ctx context.Context, n *models.Note) error {
			if !n.HasBinary || len(n.Binary) == 0 {
				return nil
			}
			return server.UploadBinary(ctx, n.OwnerID, n.ID, n.BinaryType, n.Binary)
		},
		downloadBinary: func(ctx context.Context, n *models.Note) error {
			if !n.HasBinary {
				n.Binary = nil
				return nil
			}
			data, contentType, err := server.DownloadBinary(ctx, n.OwnerID, n.ID)
			if err != nil {
				return err
			}
			n.Binary = data
			if contentType != "" {
				n.BinaryType = contentType
			}
			return nil
		},
	}, tx, recovery)
}

func isInvalidDefaultFolder(ctx context.Context, tx *SyncTransaction, f *models.Folder) (bool, error) {
	if !f.HasDefaultAttributes() {
		return false, nil
	}
	id := f.ID
	notes, err := tx.Notes().List(ctx, store.RecordFilter{OwnerID: f.OwnerID, FolderID: &id})
	if err != nil {
		return false, fmt.Errorf("list notes of folder %s: %w", f.ID, err)
	}
	return len(notes) == 0, nil
}

// PurgeInvalidDefaults hard-deletes the live placeholder folders of ownerID
// that hold no live note. It returns the number of removed folders.
func PurgeInvalidDefaults(ctx context.Context, m *EntitySyncManager[*models.Folder], tx *SyncTransaction, ownerID int64) (int, error) {
	folders, err := tx.Folders().List(ctx, store.RecordFilter{OwnerID: ownerID})
	if err != nil {
		return 0, fmt.Errorf("list folders: %w", err)
	}

	var ids []string
	for _, f := range folders {
		invalid, err := isInvalidDefaultFolder(ctx, tx, f)
		if err != nil {
			return 0, err
		}
		if invalid {
			ids = append(ids, f.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := tx.Folders().Delete(ctx, ids...); err != nil {
		return 0, fmt.Errorf("purge default folders: %w", err)
	}
	return len(ids), m.tx.MarkChanges()
}
