package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagtracer/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("https://sheets.example.com/feed", 0)

	assert.NotNil(t, client)
	assert.Equal(t, "https://sheets.example.com/feed", client.feedURL)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)

	client.SetDebug(true)
	assert.True(t, client.debug)
}

func TestFetchCatalog_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "1", "name": "Apple AirPods Pro", "website": "Amazon India", "price": 24900, "rating": 4.8,
			 "features": ["ANC", "MagSafe"], "deliveryTime": "Same Day", "category": "Electronics"},
			"not a row",
			{"id": 7, "name": "Nike Air Max", "price": "13,995", "features": "Air cushion | Mesh", "isAiGenerated": "true"},
			{"name": "No id", "rating": 9}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	products, err := client.FetchCatalog(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, 24900.0, products[0].Price)
	assert.Equal(t, []string{"ANC", "MagSafe"}, products[0].Features)

	assert.Equal(t, "7", products[1].ID)
	assert.Equal(t, 13995.0, products[1].Price)
	assert.Equal(t, []string{"Air cushion", "Mesh"}, products[1].Features)
	assert.True(t, products[1].IsAIGenerated)

	assert.Equal(t, "sheet-3", products[2].ID)
	assert.Equal(t, 5.0, products[2].Rating)
}

func TestFetchCatalog_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantErr: domain.ErrFeedFailure},
		{name: "not an array", status: http.StatusOK, body: `{"products": []}`, wantErr: domain.ErrFeedFailure},
		{name: "invalid json", status: http.StatusOK, body: `[{"id": 1,`, wantErr: domain.ErrFeedFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, 5*time.Second)
			products, err := client.FetchCatalog(context.Background())

			assert.Nil(t, products)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetchCatalog_NonOKStatusWithArrayBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`[{"id":"9","name":"Bose QC Ultra","price":29900}]`))
	}))
	defer server.Close()

	products, err := NewClient(server.URL, 5*time.Second).FetchCatalog(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "9", products[0].ID)
	assert.Equal(t, 29900.0, products[0].Price)
}

func TestFetchCatalog_SingleAttempt(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.FetchCatalog(context.Background())

	assert.ErrorIs(t, err, domain.ErrFeedFailure)
	assert.Equal(t, 1, attempts)
}

func TestFetchCatalog_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second)
	_, err := client.FetchCatalog(context.Background())

	assert.ErrorIs(t, err, domain.ErrFeedFailure)
}
