package advisory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/estoquesaude/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.AdvisoryConfig{
		Endpoint: server.URL,
		APIKey:   "test-key",
		Model:    "test-model",
		Timeout:  5 * time.Second,
	}, zap.NewNop())
}

func answerBody(text string) []byte {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
	return body
}

func TestClient_AnalyzeTrends(t *testing.T) {
	t.Run("parses the two-section answer", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))

			var req generateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Contents, 1)
			assert.Contains(t, req.Contents[0].Parts[0].Text, "Histórico de consumo")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(answerBody("TENDÊNCIA: consumo crescente de dipirona\nRECOMENDAÇÕES: repor 200 unidades"))
		})

		result, err := client.AnalyzeTrends(context.Background(), Input{
			ConsumptionHistory: "jan: 100, fev: 150",
			SeasonalNotes:      "pico no inverno",
			StrategicLevels:    "dipirona: mínimo 50",
		})

		require.NoError(t, err)
		assert.Equal(t, "consumo crescente de dipirona", result.Trend)
		assert.Equal(t, "repor 200 unidades", result.Recommendations)
	})

	t.Run("falls back to whole answer when markers are missing", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(answerBody("consumo estável"))
		})

		result, err := client.AnalyzeTrends(context.Background(), Input{})

		require.NoError(t, err)
		assert.Equal(t, "consumo estável", result.Trend)
		assert.Empty(t, result.Recommendations)
	})

	t.Run("surfaces HTTP errors", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := client.AnalyzeTrends(context.Background(), Input{})
		require.Error(t, err)
	})

	t.Run("rejects an empty candidate list", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		})

		_, err := client.AnalyzeTrends(context.Background(), Input{})
		require.Error(t, err)
	})
}

func TestParseAnswer(t *testing.T) {
	result := parseAnswer("prefixo ignorado TENDÊNCIA: alta\nRECOMENDAÇÕES: comprar")

	assert.Equal(t, "alta", result.Trend)
	assert.Equal(t, "comprar", result.Recommendations)
}
