package models

import (
	"bytes"
	"fmt"
)

// Note is a single note. Binary holds attached content (scans, audio) that is
// transferred through separate requests and never inside the metadata JSON.
type Note struct {
	Record

	// FolderID optionally references a Folder by id.
	FolderID *string `json:"folder_id,omitempty"`

	Title   string `json:"title"`
	Content string `json:"content"`

	// HasBinary tells the other side that binary content can be fetched.
	HasBinary  bool   `json:"has_binary"`
	BinaryType string `json:"binary_type,omitempty"`
	Binary     []byte `json:"-"`
}

// Clone implements Syncable.
func (n *Note) Clone() *Note {
	c := *n
	c.Record = n.Record.clone()
	if n.FolderID != nil {
		id := *n.FolderID
		c.FolderID = &id
	}
	if n.Binary != nil {
		c.Binary = bytes.Clone(n.Binary)
	}
	return &c
}

// MergeFrom implements Syncable. Binary content is not part of the metadata
// and is only replaced when src actually carries it.
func (n *Note) MergeFrom(src *Note) {
	n.Record.mergeFrom(&src.Record)
	n.FolderID = nil
	if src.FolderID != nil {
		id := *src.FolderID
		n.FolderID = &id
	}
	n.Title = src.Title
	n.Content = src.Content
	n.HasBinary = src.HasBinary
	n.BinaryType = src.BinaryType
	if src.Binary != nil {
		n.Binary = bytes.Clone(src.Binary)
	}
}

// Validate implements Syncable.
func (n *Note) Validate() error {
	if n == nil {
		return fmt.Errorf("%w: nil note", ErrValidation)
	}
	if err := n.Record.Validate(); err != nil {
		return err
	}
	if n.FolderID != nil && *n.FolderID == "" {
		return fmt.Errorf("%w: note %s references an empty folder id", ErrValidation, n.ID)
	}
	return nil
}

// ParentID returns the folder id the note belongs to, if any.
func (n *Note) ParentID() *string {
	return n.FolderID
}
