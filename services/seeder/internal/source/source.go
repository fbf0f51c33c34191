package source

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	"github.com/02loveslollipop/campus-pulse/services/seeder/internal/config"
	"github.com/02loveslollipop/campus-pulse/services/seeder/internal/utils"
)

// Load resolves the configured source into a validated registry: the
// built-in profiles, an http(s) URL or a local YAML path.
func Load(ctx context.Context, client *http.Client, src string) (*registry.Registry, error) {
	switch {
	case src == config.SourceBuiltin:
		return registry.Default(), nil
	case utils.IsRemote(src):
		doc, err := FetchDocument(ctx, client, src)
		if err != nil {
			return nil, err
		}
		return registry.New(doc)
	default:
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("open registry file: %w", err)
		}
		defer f.Close()
		doc, err := registry.Decode(f)
		if err != nil {
			return nil, err
		}
		return registry.New(doc)
	}
}

// FetchDocument retrieves a registry document over HTTP.
func FetchDocument(ctx context.Context, client *http.Client, url string) (registry.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return registry.Document{}, err
	}
	req.Header.Set("Accept", "application/yaml, text/yaml, */*")

	resp, err := client.Do(req)
	if err != nil {
		return registry.Document{}, fmt.Errorf("request registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return registry.Document{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return registry.Decode(resp.Body)
}
