package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"attendance-backend/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coords(lat, lng float64) models.LocationInput {
	return models.LocationInput{Latitude: &lat, Longitude: &lng}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("AddressPassesThrough", func(t *testing.T) {
		r := NewResolver("", time.Second, nil)
		assert.Equal(t, "Head Office", r.Resolve(ctx, models.LocationInput{Address: " Head Office "}))
	})

	t.Run("NothingGiven", func(t *testing.T) {
		r := NewResolver("", time.Second, nil)
		assert.Equal(t, models.UnknownLocation, r.Resolve(ctx, models.LocationInput{}))
	})

	t.Run("NotConfigured", func(t *testing.T) {
		r := NewResolver("", time.Second, nil)
		assert.Equal(t, models.UnknownLocation, r.Resolve(ctx, coords(23.81, 90.41)))
	})

	t.Run("ResolvesDisplayName", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "json", req.URL.Query().Get("format"))
			assert.Equal(t, "23.810000", req.URL.Query().Get("lat"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"display_name":"Gulshan, Dhaka"}`))
		}))
		defer srv.Close()

		r := NewResolver(srv.URL, time.Second, nil)
		assert.Equal(t, "Gulshan, Dhaka", r.Resolve(ctx, coords(23.81, 90.41)))
	})

	t.Run("UpstreamErrorFallsBack", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		r := NewResolver(srv.URL, time.Second, nil)
		assert.Equal(t, models.UnknownLocation, r.Resolve(ctx, coords(1, 2)))
	})

	t.Run("TimeoutFallsBack", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(300 * time.Millisecond)
			_, _ = w.Write([]byte(`{"display_name":"too late"}`))
		}))
		defer srv.Close()

		r := NewResolver(srv.URL, 50*time.Millisecond, nil)
		start := time.Now()
		assert.Equal(t, models.UnknownLocation, r.Resolve(ctx, coords(1, 2)))
		assert.Less(t, time.Since(start), 250*time.Millisecond)
	})

	t.Run("LookupReportsUpstreamKind", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"display_name":""}`))
		}))
		defer srv.Close()

		r := NewResolver(srv.URL, time.Second, nil)
		_, err := r.lookup(ctx, 1, 2)
		require.ErrorIs(t, err, models.ErrLocationUnavailable)

		appErr := models.AsAppError(err)
		assert.Equal(t, models.KindUpstream, appErr.Kind)
		assert.Contains(t, err.Error(), "empty display_name")

		_, err = NewResolver("", time.Second, nil).lookup(ctx, 1, 2)
		assert.ErrorIs(t, err, models.ErrLocationUnavailable)
	})
}
