package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
	"github.com/rios0rios0/depanalyzer/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/depanalyzer/internal/infrastructure/repositories"
)

// Batch is the interface for the batch command (one analysis per dependency document).
type Batch interface {
	Execute(ctx context.Context, settings *entities.Settings, opts BatchOptions) error
}

// BatchOptions holds the inputs of a batch run.
type BatchOptions struct {
	RepoRoot        string
	DiscoveryFile   string
	DependenciesDir string // every *.json file in it is a dependency document
	AnalysisFolder  string
}

// BatchCommand analyzes several dependencies of one workspace concurrently.
// Runs share the feed (and so its metadata cache) but nothing else.
type BatchCommand struct {
	feedRegistry *infraRepos.FeedRegistry
	discovery    repositories.DiscoveryRepository
	analysis     repositories.AnalysisRepository
}

// NewBatchCommand creates a new BatchCommand.
func NewBatchCommand(
	feedRegistry *infraRepos.FeedRegistry,
	discovery repositories.DiscoveryRepository,
	analysis repositories.AnalysisRepository,
) *BatchCommand {
	return &BatchCommand{
		feedRegistry: feedRegistry,
		discovery:    discovery,
		analysis:     analysis,
	}
}

// Execute runs every analysis, logging failures per dependency. It returns an
// error when at least one analysis failed.
func (it *BatchCommand) Execute(ctx context.Context, settings *entities.Settings, opts BatchOptions) error {
	discovery, err := it.discovery.ReadDiscovery(opts.DiscoveryFile)
	if err != nil {
		return fmt.Errorf("failed to read discovery: %w", err)
	}

	files, err := listDependencyFiles(opts.DependenciesDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warnf("No dependency documents found in %s", opts.DependenciesDir)
		return nil
	}

	feed, err := it.feedRegistry.Get(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize feed: %w", err)
	}

	logger.Infof("Analyzing %d dependencies with concurrency %d", len(files), settings.Concurrency)

	var failures atomic.Int32
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(settings.Concurrency)

	for _, file := range files {
		group.Go(func() error {
			if runErr := it.runOne(groupCtx, feed, *discovery, file, opts); runErr != nil {
				logger.Errorf("Analysis of %s failed: %v", filepath.Base(file), runErr)
				failures.Add(1)
			}
			return nil
		})
	}
	_ = group.Wait()

	if failed := failures.Load(); failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(files))
	}
	logger.Infof("Batch complete: %d dependencies analyzed", len(files))
	return nil
}

func (it *BatchCommand) runOne(
	ctx context.Context,
	feed repositories.PackageFeedRepository,
	discovery entities.WorkspaceDiscovery,
	file string,
	opts BatchOptions,
) error {
	info, err := it.discovery.ReadDependencyInfo(file)
	if err != nil {
		return fmt.Errorf("failed to read dependency info: %w", err)
	}
	folder := analysisFolder(opts.RepoRoot, opts.AnalysisFolder)
	return analyzeAndWrite(ctx, NewAnalyzer(feed), it.analysis, opts.RepoRoot, discovery, *info, folder)
}

// listDependencyFiles returns the *.json files of dir in lexical order.
func listDependencyFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependency documents in %q: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
