package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dozm/ioc/errorx"
)

func testConfig() *Config {
	return &Config{Env: "testing", AppName: "iocdemo"}
}

func newTestServer(t *testing.T, cfg *Config) *httptest.Server {
	t.Helper()
	logger := zaptest.NewLogger(t)
	ts := httptest.NewServer(newServer(compose(cfg, logger), logger).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestServer_ResolveService(t *testing.T) {
	ts := newTestServer(t, testConfig())

	var view serviceView
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/services/greeter", &view))
	assert.Equal(t, "greeter", view.Service)
	assert.Equal(t, "*main.Greeter", view.Type)
	assert.Equal(t, "Hello from iocdemo (visit 1)", view.Value)

	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/services/greeter?variant=formal", &view))
	assert.Equal(t, "greeter[formal]", view.Service)
	assert.Equal(t, "Good day from iocdemo (visit 2)", view.Value)

	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/services/hits", &view))
	assert.Equal(t, "2", view.Value)
}

func TestServer_VariantsShareRequestCache(t *testing.T) {
	ts := newTestServer(t, testConfig())

	var views []serviceView
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/services/greeter/variants", &views))
	require.Len(t, views, 3)

	assert.Equal(t, "greeter", views[0].Service)
	assert.Equal(t, "greeter[casual]", views[1].Service)
	assert.Equal(t, "greeter[formal]", views[2].Service)
	assert.Equal(t, "Hello from iocdemo (visit 1)", views[0].Value)
	assert.Equal(t, "Hey from iocdemo (visit 1)", views[1].Value)
	assert.Equal(t, "Good day from iocdemo (visit 1)", views[2].Value)
}

func TestServer_RedirectedMainVariant(t *testing.T) {
	cfg := testConfig()
	cfg.GreeterVariant = "casual"
	ts := newTestServer(t, cfg)

	var view serviceView
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/services/greeter", &view))
	assert.Equal(t, "Hey from iocdemo (visit 1)", view.Value)

	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/services/greeter?variant=formal", &view))
	assert.Equal(t, "Good day from iocdemo (visit 2)", view.Value)
}

func TestServer_NotFound(t *testing.T) {
	ts := newTestServer(t, testConfig())

	var body map[string]string
	require.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/services/missing", &body))
	assert.Equal(t, "ServiceNotFound 'missing'", body["error"])

	require.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/services/greeter?variant=loud", &body))
	assert.Equal(t, "ServiceNotFound 'greeter[loud]'", body["error"])
}

func TestServer_Layers(t *testing.T) {
	ts := newTestServer(t, testConfig())

	var names []string
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/layers", &names))
	require.NotEmpty(t, names)
	assert.Equal(t, "Transient(visit -> request)", names[0])
	assert.Equal(t, "Root", names[len(names)-1])
}

func TestCompose_Validate(t *testing.T) {
	base := compose(testConfig(), zaptest.NewLogger(t))

	assert.NoError(t, withRequestScope(base).Validate())

	err := base.Validate()
	var missing *errorx.MissingCacheError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "visit", missing.Service)
	assert.Equal(t, string(requestCache), missing.Cache)
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
		assert.Equal(t, ":8080", cfg.Addr)
		assert.False(t, cfg.Production())
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("IOC_ENV", "production")
		t.Setenv("IOC_SHUTDOWN_SECONDS", "9")
		cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
		assert.True(t, cfg.Production())
		assert.Equal(t, "9s", cfg.ShutdownTimeout.String())
	})

	t.Run("env file", func(t *testing.T) {
		// registers the restore before godotenv sets the variable
		t.Setenv("IOC_GREETER_VARIANT", "")
		require.NoError(t, os.Unsetenv("IOC_GREETER_VARIANT"))

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("IOC_GREETER_VARIANT=formal\n"), 0o600))

		cfg := LoadConfig(path)
		assert.Equal(t, "formal", cfg.GreeterVariant)
	})
}
