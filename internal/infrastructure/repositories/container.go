package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/depanalyzer/internal/domain/repositories"
	"github.com/rios0rios0/depanalyzer/internal/infrastructure/repositories/jsonfile"
	"github.com/rios0rios0/depanalyzer/internal/infrastructure/repositories/nuget"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register feed registry with all feed factories
	if err := container.Provide(func() *FeedRegistry {
		reg := NewFeedRegistry()
		reg.Register("nuget", nuget.NewFeedRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.DiscoveryRepository {
		return jsonfile.NewDiscoveryRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.AnalysisRepository {
		return jsonfile.NewAnalysisRepository()
	}); err != nil {
		return err
	}

	return nil
}
