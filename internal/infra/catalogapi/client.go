// Package catalogapi implements the HTTP client for the upstream
// commerce API that owns the product and category catalog.
package catalogapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/config"
	"storefront/internal/domain/catalog"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultTimeout = 15 * time.Second

// Client talks to the upstream catalog API over HTTP. Responses arrive in
// the upstream's loose JSON dialect and are decoded into the raw catalog
// types without interpretation; normalization happens downstream.
type Client struct {
	baseURL  string
	apiToken string
	client   *http.Client
	logger   *slog.Logger
}

// ClientParams holds dependencies for the catalog client, injected by Fx.
type ClientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewClient creates a catalog API client from configuration.
func NewClient(params ClientParams) (service.CatalogProvider, error) {
	cfg := params.Config.Catalog
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("catalog base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: params.Logger,
	}, nil
}

// FetchProducts retrieves the full raw product list.
func (c *Client) FetchProducts(ctx context.Context) ([]catalog.RawProduct, error) {
	body, err := c.get(ctx, "/products")
	if err != nil {
		return nil, err
	}

	var products []catalog.RawProduct
	if err := decodeCollection(body, "products", &products); err != nil {
		return nil, errors.Wrap(err, "failed to decode products response")
	}

	return products, nil
}

// FetchProduct retrieves a single raw product by its upstream ID.
func (c *Client) FetchProduct(ctx context.Context, id string) (*catalog.RawProduct, error) {
	body, err := c.get(ctx, "/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var product catalog.RawProduct
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, errors.Wrap(err, "failed to decode product response")
	}

	return &product, nil
}

// FetchCategories retrieves the full raw category list.
func (c *Client) FetchCategories(ctx context.Context) ([]catalog.RawCategory, error) {
	body, err := c.get(ctx, "/categories")
	if err != nil {
		return nil, err
	}

	var categories []catalog.RawCategory
	if err := decodeCollection(body, "categories", &categories); err != nil {
		return nil, errors.Wrap(err, "failed to decode categories response")
	}

	return categories, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create catalog request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "catalog request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domainerrors.ErrProductNotFound
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn("Catalog API returned unexpected status",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)

		return nil, errors.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read catalog response")
	}

	return body, nil
}

// decodeCollection accepts either a bare JSON array or an envelope object
// holding the array under the given key. The upstream has shipped both.
func decodeCollection[T any](body []byte, key string, out *[]T) error {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(body, out)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return err
	}

	raw, ok := envelope[key]
	if !ok {
		// Some deployments wrap the payload under "data".
		raw, ok = envelope["data"]
		if !ok {
			return errors.Errorf("response has no %q or \"data\" field", key)
		}
	}

	return json.Unmarshal(raw, out)
}
