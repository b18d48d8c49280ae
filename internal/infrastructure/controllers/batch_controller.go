package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depanalyzer/internal/domain/commands"
	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
)

// BatchController handles the "batch" subcommand (many dependencies, one workspace).
type BatchController struct {
	command commands.Batch
}

// NewBatchController creates a new BatchController.
func NewBatchController(command commands.Batch) *BatchController {
	return &BatchController{command: command}
}

// GetBind returns the Cobra command metadata for the batch controller.
func (it *BatchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "batch",
		Short: "Analyze every dependency document in a directory",
		Long: `Analyze several dependencies of the same discovered workspace.

Every *.json file in --dependencies-dir is a dependency document. Analyses
run concurrently (see "concurrency" in the config file) and share the package
metadata cache. A failed analysis does not stop the others, but makes the
command exit with an error.`,
	}
}

// Execute runs the batch analysis.
func (it *BatchController) Execute(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, _ := cmd.Flags().GetString("config")
	repoRoot, _ := cmd.Flags().GetString("repo-root")
	discoveryFile, _ := cmd.Flags().GetString("discovery-file")
	dependenciesDir, _ := cmd.Flags().GetString("dependencies-dir")
	analysisFolder, _ := cmd.Flags().GetString("analysis-folder")

	settings, err := entities.LoadSettings(configPath)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	if runErr := it.command.Execute(ctx, settings, commands.BatchOptions{
		RepoRoot:        resolveRepoRoot(repoRoot),
		DiscoveryFile:   discoveryFile,
		DependenciesDir: dependenciesDir,
		AnalysisFolder:  analysisFolder,
	}); runErr != nil {
		logger.Fatalf("Batch failed: %v", runErr)
	}
}

// AddFlags adds the batch-specific flags to the given Cobra command.
func (it *BatchController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("repo-root", "", "Repository root (default: enclosing Git work tree)")
	cmd.Flags().String("discovery-file", "", "Path to the discovery document")
	cmd.Flags().String("dependencies-dir", "", "Directory holding one dependency document per dependency")
	cmd.Flags().String("analysis-folder", entities.DefaultAnalysisFolder, "Directory the results are written to")
	_ = cmd.MarkFlagRequired("discovery-file")
	_ = cmd.MarkFlagRequired("dependencies-dir")
}
