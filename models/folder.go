package models

import (
	"fmt"
	"strings"
)

const (
	// DefaultFolderName is the placeholder name given to folders created
	// without user input.
	DefaultFolderName = "Untitled Folder"

	// DefaultFolderColor is the placeholder color of such folders.
	DefaultFolderColor = "blue"
)

// Folder groups notes for display. It does not own them: deleting a folder
// leaves its notes in place.
type Folder struct {
	Record

	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewFolder builds a folder on top of rec.
func NewFolder(rec Record, name, color string) *Folder {
	return &Folder{Record: rec, Name: name, Color: color}
}

// Clone implements Syncable.
func (f *Folder) Clone() *Folder {
	c := *f
	c.Record = f.Record.clone()
	return &c
}

// MergeFrom implements Syncable.
func (f *Folder) MergeFrom(src *Folder) {
	f.Record.mergeFrom(&src.Record)
	f.Name = src.Name
	f.Color = src.Color
}

// Validate implements Syncable.
func (f *Folder) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil folder", ErrValidation)
	}
	return f.Record.Validate()
}

// HasDefaultAttributes reports whether the folder still carries the
// placeholder name and color. Whether it is an "empty default folder" also
// depends on its notes, which only the store knows.
func (f *Folder) HasDefaultAttributes() bool {
	name := strings.TrimSpace(f.Name)
	color := strings.TrimSpace(strings.ToLower(f.Color))
	return (name == "" || name == DefaultFolderName) && (color == "" || color == DefaultFolderColor)
}
