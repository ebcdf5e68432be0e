package catalogapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	provider, err := NewClient(ClientParams{
		Config: &config.Config{
			Catalog: &config.CatalogConfig{
				BaseURL:  baseURL,
				APIToken: "test-token",
				Timeout:  5 * time.Second,
			},
		},
		Logger: slog.Default(),
	})
	require.NoError(t, err)

	client, ok := provider.(*Client)
	require.True(t, ok)

	return client
}

func TestClient_FetchProducts_BareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "name": "openWellSubmersiblePump", "price": 1000}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	products, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "1", products[0].ProductID())
	assert.Equal(t, "openWellSubmersiblePump", products[0].Name)
}

func TestClient_FetchProducts_Envelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"products": [{"id": "abc", "name": "Pressure Booster"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	products, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "abc", products[0].ProductID())
}

func TestClient_FetchProducts_DataEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": [{"id": "x1"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	products, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestClient_FetchProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.FetchProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestClient_FetchProduct_EscapesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/a%2Fb", r.URL.EscapedPath())
		w.Write([]byte(`{"id": "a/b", "name": "Odd ID"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	product, err := client.FetchProduct(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "a/b", product.ProductID())
}

func TestClient_FetchCategories_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.FetchCategories(context.Background())
	assert.ErrorContains(t, err, "502")
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(ClientParams{
		Config: &config.Config{Catalog: &config.CatalogConfig{}},
		Logger: slog.Default(),
	})
	assert.Error(t, err)
}
