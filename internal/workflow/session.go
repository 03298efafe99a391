// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow wires the content tools to a session's state store. It
// exposes the tools through a string-returning Toolset for an orchestrator
// and runs them in a fixed order through Pipeline.
package workflow

import (
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/pdiddy/content-workflow/internal/state"
)

// Session is one workflow conversation: a state store, the file it is
// persisted to, and a logger tagged with the session ID.
type Session struct {
	ID        string
	Store     *state.Store
	StatePath string
	Logger    *slog.Logger
}

// NewSession returns a session with a fresh ULID. An empty statePath
// disables persistence. A nil logger uses slog.Default.
func NewSession(store *state.Store, statePath string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := ulid.Make().String()
	return &Session{
		ID:        id,
		Store:     store,
		StatePath: statePath,
		Logger:    logger.With("session", id),
	}
}

// Persist saves the store to the state file. A failure is logged and
// reported as false; the in-memory state is unaffected.
func (s *Session) Persist() bool {
	if s.StatePath == "" {
		return true
	}
	if err := s.Store.Save(s.StatePath); err != nil {
		s.Logger.Warn("saving workflow state", "path", s.StatePath, "err", err)
		return false
	}
	s.Logger.Debug("saved workflow state", "path", s.StatePath)
	return true
}

// Restore loads the state file into the store. A missing file is not an
// error. Failures are logged and reported as false.
func (s *Session) Restore() bool {
	if s.StatePath == "" {
		return true
	}
	found, err := s.Store.Load(s.StatePath)
	if err != nil {
		s.Logger.Warn("loading workflow state", "path", s.StatePath, "err", err)
		return false
	}
	s.Logger.Debug("loaded workflow state", "path", s.StatePath, "found", found)
	return true
}
