package commands

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
	"github.com/rios0rios0/depanalyzer/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/depanalyzer/internal/infrastructure/repositories"
)

// Analyze is the interface for the analyze command (single dependency).
type Analyze interface {
	Execute(ctx context.Context, settings *entities.Settings, opts AnalyzeOptions) error
}

// AnalyzeOptions holds the inputs of a single analysis run.
type AnalyzeOptions struct {
	RepoRoot       string
	DiscoveryFile  string
	DependencyFile string
	AnalysisFolder string // relative folders are resolved against RepoRoot
}

// AnalyzeCommand reads the discovery and dependency documents, analyzes the
// dependency against the configured feed and writes the result document.
type AnalyzeCommand struct {
	feedRegistry *infraRepos.FeedRegistry
	discovery    repositories.DiscoveryRepository
	analysis     repositories.AnalysisRepository
}

// NewAnalyzeCommand creates a new AnalyzeCommand.
func NewAnalyzeCommand(
	feedRegistry *infraRepos.FeedRegistry,
	discovery repositories.DiscoveryRepository,
	analysis repositories.AnalysisRepository,
) *AnalyzeCommand {
	return &AnalyzeCommand{
		feedRegistry: feedRegistry,
		discovery:    discovery,
		analysis:     analysis,
	}
}

// Execute runs one analysis. Nothing is written when any step fails.
func (it *AnalyzeCommand) Execute(ctx context.Context, settings *entities.Settings, opts AnalyzeOptions) error {
	discovery, err := it.discovery.ReadDiscovery(opts.DiscoveryFile)
	if err != nil {
		return fmt.Errorf("failed to read discovery: %w", err)
	}

	info, err := it.discovery.ReadDependencyInfo(opts.DependencyFile)
	if err != nil {
		return fmt.Errorf("failed to read dependency info: %w", err)
	}

	feed, err := it.feedRegistry.Get(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize feed: %w", err)
	}

	logger.Infof("Analyzing %s %s (vulnerable: %v)", info.Name, info.Version, info.IsVulnerable)
	folder := analysisFolder(opts.RepoRoot, opts.AnalysisFolder)
	return analyzeAndWrite(ctx, NewAnalyzer(feed), it.analysis, opts.RepoRoot, *discovery, *info, folder)
}

// analysisFolder anchors a relative output folder at the repository root.
func analysisFolder(repoRoot, folder string) string {
	if folder == "" {
		folder = entities.DefaultAnalysisFolder
	}
	if filepath.IsAbs(folder) || repoRoot == "" {
		return folder
	}
	return filepath.Join(repoRoot, folder)
}

func analyzeAndWrite(
	ctx context.Context,
	analyzer *Analyzer,
	analysis repositories.AnalysisRepository,
	repoRoot string,
	discovery entities.WorkspaceDiscovery,
	info entities.DependencyInfo,
	folder string,
) error {
	result, err := analyzer.Analyze(ctx, repoRoot, discovery, info)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", info.Name, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	path, err := analysis.WriteAnalysis(folder, info.Name, result)
	if err != nil {
		return fmt.Errorf("failed to write analysis for %s: %w", info.Name, err)
	}

	logger.Infof(
		"Analysis for %s written to %s (can update: %v, version: %s, peers: %d)",
		info.Name, path, result.CanUpdate, result.UpdatedVersion, len(result.UpdatedDependencies),
	)
	return nil
}
