package ipapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Locate(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/", r.URL.Path)
		_, _ = w.Write([]byte(`{"country_name": "India", "country_code": "IN", "city": "Mumbai"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{BaseURL: srv.URL})
	name, code, err := client.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "India", name)
	assert.Equal(t, "IN", code)
}

func TestClient_Locate_ServerError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{BaseURL: srv.URL})
	_, _, err := client.Locate(context.Background())
	require.Error(t, err)
}
