package nuget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
)

const packageBaseAddressType = "PackageBaseAddress/3.0.0"

// errNotFound is returned by the client when the feed answers 404.
var errNotFound = errors.New("not found on feed")

type serviceIndex struct {
	Resources []struct {
		ID   string `json:"@id"`
		Type string `json:"@type"`
	} `json:"resources"`
}

type versionIndex struct {
	Versions []string `json:"versions"`
}

// client talks to a NuGet v3 feed. Retries and backoff live here.
type client struct {
	http         *retryablehttp.Client
	serviceIndex string
	token        string

	mu          sync.Mutex
	baseAddress string
}

func newClient(settings *entities.Settings) *client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = settings.RetryMax
	httpClient.HTTPClient.Timeout = settings.RequestTimeout()
	httpClient.Logger = leveledLogger{}

	return &client{
		http:         httpClient,
		serviceIndex: settings.Source,
		token:        settings.Token,
	}
}

// packageBaseAddress resolves the flat container URL once per client.
func (c *client) packageBaseAddress(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.baseAddress != "" {
		return c.baseAddress, nil
	}

	data, err := c.get(ctx, c.serviceIndex)
	if err != nil {
		return "", fmt.Errorf("failed to read service index %s: %w", c.serviceIndex, err)
	}

	var index serviceIndex
	if unmarshalErr := json.Unmarshal(data, &index); unmarshalErr != nil {
		return "", fmt.Errorf("failed to parse service index %s: %w", c.serviceIndex, unmarshalErr)
	}

	for _, resource := range index.Resources {
		if resource.Type == packageBaseAddressType {
			c.baseAddress = strings.TrimSuffix(resource.ID, "/")
			logger.Debugf("[nuget] Package base address: %s", c.baseAddress)
			return c.baseAddress, nil
		}
	}
	return "", fmt.Errorf("service index %s has no %s resource", c.serviceIndex, packageBaseAddressType)
}

// listVersions returns every published version of id, or nil when the feed
// does not know the package.
func (c *client) listVersions(ctx context.Context, id string) ([]string, error) {
	base, err := c.packageBaseAddress(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/index.json", base, strings.ToLower(id))
	data, err := c.get(ctx, url)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var index versionIndex
	if unmarshalErr := json.Unmarshal(data, &index); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse version index of %s: %w", id, unmarshalErr)
	}
	return index.Versions, nil
}

// downloadNuspec fetches the manifest of id/version; errNotFound when missing.
func (c *client) downloadNuspec(ctx context.Context, id, version string) ([]byte, error) {
	base, err := c.packageBaseAddress(ctx)
	if err != nil {
		return nil, err
	}

	lowerID := strings.ToLower(id)
	url := fmt.Sprintf("%s/%s/%s/%s.nuspec", base, lowerID, flatContainerVersion(version), lowerID)
	return c.get(ctx, url)
}

// flatContainerVersion normalizes a version the way the flat container keys
// it: lower case, no build metadata, at least three components and no zero
// fourth component.
func flatContainerVersion(version string) string {
	value := strings.ToLower(strings.TrimSpace(version))
	if before, _, found := strings.Cut(value, "+"); found {
		value = before
	}

	release, prerelease, hasPrerelease := strings.Cut(value, "-")
	parts := strings.Split(release, ".")
	for len(parts) < 3 { //nolint:mnd // major.minor.patch
		parts = append(parts, "0")
	}
	if len(parts) == 4 && parts[3] == "0" { //nolint:mnd // revision
		parts = parts[:3]
	}

	normalized := strings.Join(parts, ".")
	if hasPrerelease {
		normalized += "-" + prerelease
	}
	return normalized
}

func (c *client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.SetBasicAuth("depanalyzer", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", url, errNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// leveledLogger routes retryablehttp messages through logrus.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	logger.WithFields(fields(keysAndValues)).Error("[nuget] " + msg)
}

func (leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	logger.WithFields(fields(keysAndValues)).Warn("[nuget] " + msg)
}

func (leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.WithFields(fields(keysAndValues)).Debug("[nuget] " + msg)
}

func (leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	logger.WithFields(fields(keysAndValues)).Debug("[nuget] " + msg)
}

func fields(keysAndValues []interface{}) logger.Fields {
	result := make(logger.Fields, len(keysAndValues)/2) //nolint:mnd // key/value pairs
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		result[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return result
}
