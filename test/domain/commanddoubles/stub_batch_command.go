//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/depanalyzer/internal/domain/commands"
	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
)

// StubBatchCommand is a stub implementation of commands.Batch.
type StubBatchCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.BatchOptions
}

var _ commands.Batch = (*StubBatchCommand)(nil)

func (s *StubBatchCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.BatchOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
