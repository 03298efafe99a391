// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package state holds the workflow record shared by the tool steps of one
// session and persists it to a JSON file.
//
// A Store is owned by a single session and is not safe for concurrent use.
// Sessions that run concurrently each construct their own Store. Persistence
// overwrites the whole file in place with no lock, so two Stores must not
// share a state file.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/pdiddy/content-workflow/pkg/types"
)

// Store holds the four workflow slots.
type Store struct {
	fs     afero.Fs
	record types.WorkflowRecord
}

// New returns an empty Store that persists through fs. A nil fs uses the OS
// filesystem.
func New(fsys afero.Fs) *Store {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Store{fs: fsys, record: emptyRecord()}
}

func emptyRecord() types.WorkflowRecord {
	return types.WorkflowRecord{CreativeSuggestions: []types.CreativeRecord{}}
}

// SetResearchData replaces the research slot.
func (s *Store) SetResearchData(r types.ResearchRecord) {
	r = r.Clone()
	s.record.ResearchData = &r
}

// ResearchData returns a copy of the research slot, or nil if it is empty.
func (s *Store) ResearchData() *types.ResearchRecord {
	if s.record.ResearchData == nil {
		return nil
	}
	r := s.record.ResearchData.Clone()
	return &r
}

// SetDraftContent replaces the draft slot.
func (s *Store) SetDraftContent(d types.DraftRecord) {
	s.record.DraftContent = &d
}

// DraftContent returns a copy of the draft slot, or nil if it is empty.
func (s *Store) DraftContent() *types.DraftRecord {
	if s.record.DraftContent == nil {
		return nil
	}
	d := *s.record.DraftContent
	return &d
}

// SetFinalContent replaces the final-content slot.
func (s *Store) SetFinalContent(f types.FinalRecord) {
	f = f.Clone()
	s.record.FinalContent = &f
}

// FinalContent returns a copy of the final-content slot, or nil if it is empty.
func (s *Store) FinalContent() *types.FinalRecord {
	if s.record.FinalContent == nil {
		return nil
	}
	f := s.record.FinalContent.Clone()
	return &f
}

// AddCreativeSuggestion appends c to the creative history. Entries are never
// removed except by Clear.
func (s *Store) AddCreativeSuggestion(c types.CreativeRecord) {
	s.record.CreativeSuggestions = append(s.record.CreativeSuggestions, c.Clone())
}

// CreativeSuggestions returns the full creative history in insertion order.
func (s *Store) CreativeSuggestions() []types.CreativeRecord {
	out := make([]types.CreativeRecord, 0, len(s.record.CreativeSuggestions))
	for _, c := range s.record.CreativeSuggestions {
		out = append(out, c.Clone())
	}
	return out
}

// Snapshot returns a deep copy of the whole record.
func (s *Store) Snapshot() types.WorkflowRecord {
	return s.record.Clone()
}

// Clear resets all four slots to empty.
func (s *Store) Clear() {
	s.record = emptyRecord()
}

// Save writes the record to path as indented JSON, overwriting any existing
// file. A failed save leaves the in-memory record untouched.
func (s *Store) Save(path string) error {
	data, err := json.MarshalIndent(s.record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling workflow state: %w", err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("writing workflow state %s: %w", path, err)
	}
	return nil
}

// Load replaces the record with the contents of path. It reports false with
// a nil error when path does not exist, in which case the record is left as
// is. On a read or parse failure the error is returned and the record is
// also left as is.
//
// Fields missing from the file load as absent slots.
func (s *Store) Load(path string) (bool, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading workflow state %s: %w", path, err)
	}

	var rec types.WorkflowRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return false, fmt.Errorf("parsing workflow state %s: %w", path, err)
	}
	if rec.CreativeSuggestions == nil {
		rec.CreativeSuggestions = []types.CreativeRecord{}
	}
	s.record = rec
	return true, nil
}
