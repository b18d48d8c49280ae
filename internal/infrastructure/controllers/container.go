package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewAnalyzeController); err != nil {
		return err
	}
	if err := container.Provide(NewBatchController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	analyzeController *AnalyzeController,
	batchController *BatchController,
) *[]entities.Controller {
	return &[]entities.Controller{
		analyzeController,
		batchController,
	}
}
