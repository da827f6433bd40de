package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testGeoJSON = `{"type":"FeatureCollection","features":[
  {"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[121.05,14.55],[121.10,14.55],[121.10,14.60],[121.05,14.55]]]},"properties":{"adm3_en":"City of Pasig"}}
]}`

const testCSV = "city,2025_risk\nPasig,Low\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGeoJSONSource_File(t *testing.T) {
	path := writeTemp(t, "metro_manila.geojson", testGeoJSON)
	src := NewGeoJSONSource(path, time.Second, zap.NewNop())

	features, err := src.LoadBoundaries(context.Background())
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, "City of Pasig", features[0].Name())
}

func TestGeoJSONSource_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/metro_manila.geojson", r.URL.Path)
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(testGeoJSON))
	}))
	defer server.Close()

	src := NewGeoJSONSource(server.URL+"/data/metro_manila.geojson", time.Second, zap.NewNop())

	features, err := src.LoadBoundaries(context.Background())
	require.NoError(t, err)
	assert.Len(t, features, 1)
}

func TestGeoJSONSource_InvalidBody(t *testing.T) {
	path := writeTemp(t, "broken.geojson", `{"type":"Feature"}`)
	src := NewGeoJSONSource(path, time.Second, zap.NewNop())

	_, err := src.LoadBoundaries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.geojson")
}

func TestCSVSource_File(t *testing.T) {
	path := writeTemp(t, "risk.csv", testCSV)
	src := NewCSVSource(path, time.Second, zap.NewNop())

	text, err := src.LoadRiskTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCSV, text)
}

func TestCSVSource_HTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	src := NewCSVSource(server.URL+"/missing.csv", time.Second, zap.NewNop())

	_, err := src.LoadRiskTable(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCSVSource_MissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"), time.Second, zap.NewNop())

	_, err := src.LoadRiskTable(context.Background())
	assert.Error(t, err)
}

func TestFetch_EmptyLocation(t *testing.T) {
	_, err := newFetcher(time.Second, zap.NewNop()).fetch(context.Background(), "")
	assert.Error(t, err)
}

func TestFetch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFetcher(time.Second, zap.NewNop()).fetch(ctx, server.URL)
	assert.Error(t, err)
}

func TestFetch_BodyOverLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testCSV))
	}))
	defer server.Close()

	f := newFetcher(time.Second, zap.NewNop())
	f.maxBody = int64(len(testCSV)) - 1

	_, err := f.fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestFetch_BodyAtLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testCSV))
	}))
	defer server.Close()

	f := newFetcher(time.Second, zap.NewNop())
	f.maxBody = int64(len(testCSV))

	data, err := f.fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, testCSV, string(data))
}
