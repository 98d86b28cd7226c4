package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/kestfor/FiveWordCliques/internal/services/finder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPNotifier_Notify(t *testing.T) {
	result := &finder.Result{
		RunID:     uuid.New(),
		Status:    finder.StatusReady,
		Complete:  true,
		Stats:     finder.Stats{Lines: 6, Anagrams: 1, Candidates: 5},
		Solutions: []finder.Solution{{"abcde", "fghij", "klmno", "pqrst", "uvwxy"}},
	}

	t.Run("posts result", func(t *testing.T) {
		var got finder.Result
		var runHeader string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			runHeader = r.Header.Get("X-Run-ID")
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		n := NewHTTPNotifier(&HTTPNotifierConfig{NotifyURL: srv.URL})
		require.NoError(t, n.Notify(result))

		assert.Equal(t, result.RunID.String(), runHeader)
		assert.Equal(t, *result, got)
	})

	t.Run("non 2xx status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		n := NewHTTPNotifier(&HTTPNotifierConfig{NotifyURL: srv.URL})
		assert.Error(t, n.Notify(result))
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		n := NewHTTPNotifier(&HTTPNotifierConfig{NotifyURL: url})
		assert.Error(t, n.Notify(result))
	})
}

func TestLogNotifier_Notify(t *testing.T) {
	n := NewLogNotifier()

	assert.NoError(t, n.Notify(&finder.Result{RunID: uuid.New(), Status: finder.StatusReady}))
	assert.NoError(t, n.Notify(&finder.Result{RunID: uuid.New(), Status: finder.StatusError, Error: "boom"}))
}
