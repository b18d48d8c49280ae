package repositories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
	domainRepos "github.com/rios0rios0/depanalyzer/internal/domain/repositories"
)

// FeedFactory is a constructor function that creates a package feed from settings.
type FeedFactory func(settings *entities.Settings) (domainRepos.PackageFeedRepository, error)

// FeedRegistry manages all registered package feed implementations.
type FeedRegistry struct {
	feeds map[string]FeedFactory
}

// NewFeedRegistry creates an empty feed registry.
func NewFeedRegistry() *FeedRegistry {
	return &FeedRegistry{
		feeds: make(map[string]FeedFactory),
	}
}

// Register adds a feed factory under the given name (e.g. "nuget").
func (r *FeedRegistry) Register(name string, factory FeedFactory) {
	r.feeds[name] = factory
}

// Get returns a configured feed instance for the feed type named in settings.
func (r *FeedRegistry) Get(settings *entities.Settings) (domainRepos.PackageFeedRepository, error) {
	factory, ok := r.feeds[settings.Feed]
	if !ok {
		return nil, fmt.Errorf("unknown feed type: %q (available: %s)", settings.Feed, strings.Join(r.Names(), ", "))
	}
	return factory(settings)
}

// Names returns the registered feed names in sorted order.
func (r *FeedRegistry) Names() []string {
	names := make([]string, 0, len(r.feeds))
	for name := range r.feeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
