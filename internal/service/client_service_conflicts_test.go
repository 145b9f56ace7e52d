package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-note-sync/models"
)

func TestConflictResolver_Resolve(t *testing.T) {
	var resolver ConflictResolver[*models.Note]

	base := newNote("Shared", nil, day1, models.StatusSynced)

	deletedLocal := base.Clone()
	deletedLocal.SoftDelete(day2)

	newerRemote := base.Clone()
	newerRemote.Title = "Remote edit"
	newerRemote.LastModified = &day2

	newerLocal := newerRemote.Clone()

	sameTime := newerRemote.Clone()
	sameTime.LastModified = base.LastModified

	tests := []struct {
		name       string
		local      *models.Note
		found      bool
		remote     *models.Note
		wantAction ConflictAction
		wantTitle  string
		conflict   bool
	}{
		{
			name:       "missing locally",
			found:      false,
			remote:     newerRemote,
			wantAction: ActionCreate,
			wantTitle:  "Remote edit",
		},
		{
			name:       "local deletion pending",
			local:      deletedLocal,
			found:      true,
			remote:     newerRemote,
			wantAction: ActionIgnoreDeleted,
			wantTitle:  "Shared",
		},
		{
			name:       "remote newer",
			local:      base,
			found:      true,
			remote:     newerRemote,
			wantAction: ActionOverwrite,
			wantTitle:  "Remote edit",
			conflict:   true,
		},
		{
			name:       "local newer",
			local:      newerLocal,
			found:      true,
			remote:     base,
			wantAction: ActionKeepLocal,
			wantTitle:  "Remote edit",
		},
		{
			name:       "tie keeps local",
			local:      base,
			found:      true,
			remote:     sameTime,
			wantAction: ActionKeepLocal,
			wantTitle:  "Shared",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolver.Resolve(tt.local, tt.found, tt.remote)

			assert.Equal(t, tt.wantAction, res.Action)
			assert.Equal(t, tt.conflict, res.Conflict())
			assert.Equal(t, tt.wantTitle, res.Record.Title)
			if tt.wantAction == ActionCreate || tt.wantAction == ActionOverwrite {
				assert.Equal(t, models.StatusSynced, res.Record.SyncStatus)
			}
		})
	}
}

func TestConflictResolver_DoesNotModifyInputs(t *testing.T) {
	var resolver ConflictResolver[*models.Folder]

	local := newFolder("Local", day1, models.StatusSynced)
	remote := local.Clone()
	remote.Name = "Remote"
	remote.LastModified = &day2
	remote.SyncStatus = models.StatusPending

	res := resolver.Resolve(local, true, remote)

	assert.Equal(t, ActionOverwrite, res.Action)
	assert.Equal(t, "Remote", res.Record.Name)
	assert.NotSame(t, local, res.Record)
	assert.Equal(t, "Local", local.Name)
	assert.Equal(t, models.StatusPending, remote.SyncStatus)
}

func TestConflictAction_String(t *testing.T) {
	assert.Equal(t, "create", ActionCreate.String())
	assert.Equal(t, "overwrite", ActionOverwrite.String())
	assert.Equal(t, "keep-local", ActionKeepLocal.String())
	assert.Equal(t, "ignore-deleted", ActionIgnoreDeleted.String())
	assert.Equal(t, "unknown", ConflictAction(42).String())
}
