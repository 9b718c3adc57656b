package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ollama/native/api"
	"github.com/ollama/native/native/factory"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := NewServer(nil, factory.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return s.GenerateRoutes()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	w := doRequest(t, newTestRouter(t), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Native factory is running", w.Body.String())
}

func TestSelectHandler(t *testing.T) {
	h := newTestRouter(t)

	t.Run("nbeats", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/api/native/select",
			`{"template":"my_nbeats","modality":"timeseries","input":{"features":4}}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp api.SelectResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "my_nbeats", resp.Template)
		assert.Equal(t, "timeseries", resp.Modality)
		assert.Equal(t, "nbeats", resp.Architecture)
		assert.NotEmpty(t, resp.ID)
		assert.EqualValues(t, 40, resp.Parameters["hidden_dim"])
		assert.EqualValues(t, 1, resp.Parameters["backcast_loss_coef"])
	})

	t.Run("ttransformer mit params", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/api/native/select",
			`{"template":"ttransformer","modality":"csvts","params":{"encoder":{"heads":4},"autoreg":true},"input":{"features":2}}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp api.SelectResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ttransformer", resp.Architecture)
		assert.Equal(t, true, resp.Parameters["autoreg"])
	})

	t.Run("vision registry", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/api/native/select",
			`{"template":"resnet50","modality":"image","params":{"nclasses":7},"input":{"width":224,"height":224,"channels":3}}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp api.SelectResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "resnet50", resp.Architecture)
		assert.EqualValues(t, 7, resp.Parameters["nclasses"])
	})

	t.Run("video nutzt bild-selector", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/api/native/select",
			`{"template":"vit_tiny","modality":"video","params":{"vit_flavor":"vit_tiny_patch16"},"input":{"frames":8,"frame_width":64,"frame_height":64,"channels":3}}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp api.SelectResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "vit", resp.Architecture)
		assert.Equal(t, "video", resp.Modality)
	})
}

func TestSelectHandlerNoMatch(t *testing.T) {
	h := newTestRouter(t)

	w := doRequest(t, h, http.MethodPost, "/api/native/select", `{"template":"nbeat","modality":"timeseries"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	var serr api.StatusError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &serr))
	assert.Equal(t, "nbeats", serr.Suggestion)
	assert.Contains(t, serr.ErrorMessage, "nbeat")

	w = doRequest(t, h, http.MethodPost, "/api/native/select", `{"template":"bert","modality":"text"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectHandlerErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"kaputtes json", `{"template":`, http.StatusBadRequest},
		{"ohne template", `{"modality":"image"}`, http.StatusBadRequest},
		{"unbekannte modalitaet", `{"template":"nbeats","modality":"audio"}`, http.StatusBadRequest},
		{"falsche eingabe", `{"template":"nbeats","modality":"timeseries","input":{"features":"many"}}`, http.StatusBadRequest},
		{"params kein objekt", `{"template":"nbeats","modality":"timeseries","params":[1,2]}`, http.StatusBadRequest},
		{"stackdef falscher typ", `{"template":"nbeats","modality":"timeseries","params":{"stackdef":"t2"}}`, http.StatusBadRequest},
		{"stackdef ungueltig", `{"template":"nbeats","modality":"timeseries","params":{"stackdef":["x9"]}}`, http.StatusUnprocessableEntity},
		{"unbekannter flavor", `{"template":"vit","modality":"image","params":{"vit_flavor":"vit_giant"}}`, http.StatusUnprocessableEntity},
	}

	h := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, h, http.MethodPost, "/api/native/select", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestTemplatesHandler(t *testing.T) {
	h := newTestRouter(t)

	t.Run("alle", func(t *testing.T) {
		w := doRequest(t, h, http.MethodGet, "/api/native/templates", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.TemplatesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"nbeats", "ttransformer"}, resp.Templates["timeseries"])
		assert.Equal(t, []string{}, resp.Templates["text"])
		assert.Contains(t, resp.Templates["image"], "resnet50")
		assert.Equal(t, resp.Templates["image"], resp.Templates["video"])
	})

	t.Run("gefiltert", func(t *testing.T) {
		w := doRequest(t, h, http.MethodGet, "/api/native/templates?modality=ts", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.TemplatesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Templates, 1)
		assert.Equal(t, []string{"nbeats", "ttransformer"}, resp.Templates["timeseries"])
	})

	t.Run("ungueltig", func(t *testing.T) {
		w := doRequest(t, h, http.MethodGet, "/api/native/templates?modality=audio", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHostGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("OLLAMA_NATIVE_HOST", "Native.Box:11435")

	addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 11435}
	h := NewServer(addr, factory.New(), nil).GenerateRoutes()

	tests := []struct {
		host string
		code int
	}{
		{"localhost:11435", http.StatusOK},
		{"127.0.0.1:11435", http.StatusOK},
		{"[::1]:11435", http.StatusOK},
		{"native.box:11435", http.StatusOK},
		{"NATIVE.BOX", http.StatusOK},
		{"native.internal", http.StatusForbidden},
		{"attacker.example", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestHostGuardNonLoopback(t *testing.T) {
	g := newHostGuard(&net.TCPAddr{IP: net.IPv4(10, 0, 0, 5), Port: 11435}, "")
	assert.True(t, g.allows("attacker.example"))

	g = newHostGuard(nil, "")
	assert.True(t, g.allows("attacker.example"))

	g = newHostGuard(&net.TCPAddr{IP: net.IPv6loopback, Port: 11435}, "127.0.0.1")
	assert.False(t, g.allows("attacker.example"))
	assert.True(t, g.allows(""))
}
