package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDecodesEntity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/states/sensor.power", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(EntityState{
			EntityID: "sensor.power",
			State:    "1534",
		})
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "tok", srv.Client())
	state, err := c.State(context.Background(), "sensor.power")
	require.NoError(t, err)
	assert.Equal(t, "1534", state.State)
}

func TestStateNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "", srv.Client())
	_, err := c.State(context.Background(), "sensor.power")
	assert.Error(t, err)
}

func TestHistoryReturnsFirstSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "filter_entity_id=sensor.power")
		_, _ = w.Write([]byte(`[[{"state":"10"},{"state":"12"}]]`))
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "", srv.Client())
	points, err := c.History(context.Background(), "sensor.power", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "12", points[1].State)
}

func TestHistoryEmptySeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "", srv.Client())
	points, err := c.History(context.Background(), "sensor.none", time.Now())
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestCallServicePostsPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/services/light/turn_on", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "", srv.Client())
	err := c.CallService(context.Background(), "light", "turn_on", map[string]any{"entity_id": "light.salon"})
	require.NoError(t, err)
	assert.Equal(t, "light.salon", got["entity_id"])
}
