//go:build unit

package storehouse_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine-engine/internal/infra"
	"vitrine-engine/internal/infra/storehouse"
	"vitrine-engine/internal/pkg/config"
)

func newClient(serverURL string) *storehouse.Client {
	cfg := config.NewTestConfig().Storehouse
	cfg.BaseURL = serverURL
	return storehouse.NewClient(cfg)
}

func TestClientFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes the base64 payload and returns the version token", func(t *testing.T) {
		var gotPath, gotRef, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotRef = r.URL.Query().Get("ref")
			gotAuth = r.Header.Get("Authorization")
			// The host wraps long base64 payloads with newlines.
			encoded := base64.StdEncoding.EncodeToString([]byte("ID,NOME\n1,Camiseta\n"))
			wrapped := encoded[:8] + "\n" + encoded[8:]
			_ = json.NewEncoder(w).Encode(map[string]string{
				"content":  wrapped,
				"encoding": "base64",
				"sha":      "abc123",
			})
		}))
		defer server.Close()

		doc, err := newClient(server.URL).Fetch(ctx, "data/produtos.csv")
		require.NoError(t, err)

		assert.Equal(t, "/repos/acme/loja-dados/contents/data/produtos.csv", gotPath)
		assert.Equal(t, "main", gotRef)
		assert.Equal(t, "Bearer test-token", gotAuth)
		assert.Equal(t, "ID,NOME\n1,Camiseta\n", string(doc.Content))
		assert.Equal(t, "abc123", doc.Version)
	})

	t.Run("missing document maps to not-found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newClient(server.URL).Fetch(ctx, "data/pedidos.csv")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("server error maps to unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := newClient(server.URL).Fetch(ctx, "data/produtos.csv")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindUnavailable))
	})

	t.Run("unreachable host maps to unavailable", func(t *testing.T) {
		_, err := newClient("http://127.0.0.1:1").Fetch(ctx, "data/produtos.csv")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindUnavailable))
	})

	t.Run("unsupported encoding maps to malformed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{
				"content":  "whatever",
				"encoding": "utf-8",
				"sha":      "abc123",
			})
		}))
		defer server.Close()

		_, err := newClient(server.URL).Fetch(ctx, "data/produtos.csv")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindMalformed))
	})
}

func TestClientCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("sends the guarded write and returns the next token", func(t *testing.T) {
		var gotMethod string
		var gotBody map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"content":{"sha":"def456"}}`))
		}))
		defer server.Close()

		version, err := newClient(server.URL).Commit(ctx,
			"data/pedidos.csv", []byte("row\n"), "abc123", "pedido PED-1")
		require.NoError(t, err)

		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, "pedido PED-1", gotBody["message"])
		assert.Equal(t, "main", gotBody["branch"])
		assert.Equal(t, "abc123", gotBody["sha"])
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("row\n")), gotBody["content"])
		assert.Equal(t, "def456", version)
	})

	t.Run("empty base version creates the document without a sha field", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"content":{"sha":"first"}}`))
		}))
		defer server.Close()

		version, err := newClient(server.URL).Commit(ctx,
			"data/pedidos.csv", []byte("row\n"), "", "pedido PED-1")
		require.NoError(t, err)

		assert.NotContains(t, gotBody, "sha")
		assert.Equal(t, "first", version)
	})

	t.Run("stale version token maps to conflict", func(t *testing.T) {
		for _, status := range []int{
			http.StatusConflict,
			http.StatusPreconditionFailed,
			http.StatusUnprocessableEntity,
		} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
			}))

			_, err := newClient(server.URL).Commit(ctx,
				"data/pedidos.csv", []byte("row\n"), "stale", "pedido PED-1")
			server.Close()

			require.Error(t, err, "status %d", status)
			assert.True(t, infra.IsKind(err, infra.KindConflict), "status %d", status)
		}
	})

	t.Run("server error maps to unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newClient(server.URL).Commit(ctx,
			"data/pedidos.csv", []byte("row\n"), "abc123", "pedido PED-1")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindUnavailable))
	})
}
