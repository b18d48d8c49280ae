package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depanalyzer/internal/domain/commands"
	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
)

// AnalyzeController handles the "analyze" subcommand (single dependency).
type AnalyzeController struct {
	command commands.Analyze
}

// NewAnalyzeController creates a new AnalyzeController.
func NewAnalyzeController(command commands.Analyze) *AnalyzeController {
	return &AnalyzeController{command: command}
}

// GetBind returns the Cobra command metadata for the analyze controller.
func (it *AnalyzeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "analyze",
		Short: "Analyze whether a dependency can be updated",
		Long: `Analyze a single dependency of a discovered workspace.

Reads the discovery document and the dependency document, searches the
package feed for the best compatible version, collects the peer dependencies
that must move with it and writes <analysis-folder>/<name>.json.`,
	}
}

// Execute runs the single-dependency analysis.
func (it *AnalyzeController) Execute(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, _ := cmd.Flags().GetString("config")
	repoRoot, _ := cmd.Flags().GetString("repo-root")
	discoveryFile, _ := cmd.Flags().GetString("discovery-file")
	dependencyFile, _ := cmd.Flags().GetString("dependency-file")
	analysisFolder, _ := cmd.Flags().GetString("analysis-folder")

	settings, err := entities.LoadSettings(configPath)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	if runErr := it.command.Execute(ctx, settings, commands.AnalyzeOptions{
		RepoRoot:       resolveRepoRoot(repoRoot),
		DiscoveryFile:  discoveryFile,
		DependencyFile: dependencyFile,
		AnalysisFolder: analysisFolder,
	}); runErr != nil {
		logger.Fatalf("Analysis failed: %v", runErr)
	}
}

// AddFlags adds the analyze-specific flags to the given Cobra command.
func (it *AnalyzeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("repo-root", "", "Repository root (default: enclosing Git work tree)")
	cmd.Flags().String("discovery-file", "", "Path to the discovery document")
	cmd.Flags().String("dependency-file", "", "Path to the dependency document")
	cmd.Flags().String("analysis-folder", entities.DefaultAnalysisFolder, "Directory the result is written to")
	_ = cmd.MarkFlagRequired("discovery-file")
	_ = cmd.MarkFlagRequired("dependency-file")
}
