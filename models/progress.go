package models

// Completion weights of the entity kinds in SyncProgress.Completion.
const (
	FolderWeight = 0.3
	NoteWeight   = 0.7
)

// KindProgress counts the work done for one entity kind.
type KindProgress struct {
	// Total is the number of dirty records to upload.
	Total int `json:"total"`
	// Synced is the number of uploaded (or otherwise settled) records.
	Synced int `json:"synced"`
	// DownloadTotal is the number of remote records to reconcile.
	DownloadTotal int `json:"download_total"`
	// Downloaded is the number of remote records processed so far.
	Downloaded int `json:"downloaded"`

	UploadDone   bool `json:"upload_done"`
	DownloadDone bool `json:"download_done"`
}

func fraction(done bool, count, total int) float64 {
	switch {
	case done:
		return 1
	case total <= 0:
		return 0
	case count >= total:
		return 1
	default:
		return float64(count) / float64(total)
	}
}

// Fraction returns the completed share of this kind in [0, 1]. For two-way
// syncs it averages the upload and download sub-phases.
func (k KindProgress) Fraction(twoWay bool) float64 {
	up := fraction(k.UploadDone, k.Synced, k.Total)
	if !twoWay {
		return up
	}
	down := fraction(k.DownloadDone, k.Downloaded, k.DownloadTotal)
	return (up + down) / 2
}

// SyncProgress is a snapshot of a running sync reported to the caller.
type SyncProgress struct {
	Folders KindProgress `json:"folders"`
	Notes   KindProgress `json:"notes"`

	// Status is a human-readable description of the current step.
	Status string `json:"status"`

	TwoWay            bool `json:"two_way"`
	ResolvedConflicts int  `json:"resolved_conflicts"`
}

// Kind returns a pointer to the counters of kind.
func (p *SyncProgress) Kind(kind EntityKind) *KindProgress {
	if kind == KindFolder {
		return &p.Folders
	}
	return &p.Notes
}

// Completion returns the weighted completion in [0, 1].
func (p SyncProgress) Completion() float64 {
	return FolderWeight*p.Folders.Fraction(p.TwoWay) + NoteWeight*p.Notes.Fraction(p.TwoWay)
}
