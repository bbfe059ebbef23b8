package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashendes/beer-console/internal/apperr"
)

type beer struct {
	ID       int64  `json:"id"`
	BeerName string `json:"beerName"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{BaseURL: server.URL})
}

func TestGetDecodesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/beers/1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(beer{ID: 1, BeerName: "Galaxy Cat"})
	})

	got, err := Get[beer](context.Background(), client, "/beers/1")
	require.NoError(t, err)
	assert.Equal(t, beer{ID: 1, BeerName: "Galaxy Cat"}, got)
}

func TestPostAndPutSendJSON(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut} {
		t.Run(method, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, method, r.Method)
				raw, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.JSONEq(t, `{"id":0,"beerName":"Mango Bobs"}`, string(raw))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"id":5,"beerName":"Mango Bobs"}`))
			})

			var (
				got beer
				err error
			)
			if method == http.MethodPost {
				got, err = Post[beer](context.Background(), client, "/beers", beer{BeerName: "Mango Bobs"})
			} else {
				got, err = Put[beer](context.Background(), client, "/beers/5", beer{BeerName: "Mango Bobs"})
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), got.ID)
		})
	}
}

func TestNoContentResolvesToEmptyValue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	got, err := Delete[beer](context.Background(), client, "/beers/1")
	require.NoError(t, err)
	assert.Equal(t, beer{}, got)

	list, err := Get[[]beer](context.Background(), client, "/beers")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRemoteDetailBecomesMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Beer not found"}`))
	})

	_, err := Get[beer](context.Background(), client, "/beers/99")
	require.Error(t, err)
	assert.Equal(t, "Beer not found", err.Error())

	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.True(t, e.IsNotFound())
	assert.Equal(t, apperr.KindRemote, e.Kind)
}

func TestRemoteWithoutDetailCarriesStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"html body", "<html>oops</html>"},
		{"json without detail", `{"error":"boom"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tt.body))
			})

			_, err := Get[beer](context.Background(), client, "/beers")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "500")
		})
	}
}

func TestNetworkFailureIsUnexpectedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := New(Config{BaseURL: url})
	_, err := Get[beer](context.Background(), client, "/beers")
	require.Error(t, err)

	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, apperr.KindTransport, e.Kind)
	assert.Contains(t, err.Error(), apperr.UnexpectedMessage)
}

func TestUndecodableSuccessIsTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := Get[beer](context.Background(), client, "/beers/1")
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, apperr.KindTransport, e.Kind)
}

func TestCallsAreNotRetried(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := Get[beer](context.Background(), client, "/beers")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestOptionalTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Timeout: 20 * time.Millisecond})
	_, err := Get[beer](context.Background(), client, "/beers")
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, apperr.KindTransport, e.Kind)
}

func TestCircuitBreakerOptIn(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	assert.Equal(t, "disabled", New(Config{BaseURL: server.URL}).CircuitState())

	client := New(Config{BaseURL: server.URL, CircuitBreaker: true})
	for i := 0; i < 3; i++ {
		_, err := Get[beer](context.Background(), client, "/beers")
		require.Error(t, err)
	}
	assert.Equal(t, "open", client.CircuitState())

	_, err := Get[beer](context.Background(), client, "/beers")
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, apperr.KindTransport, e.Kind)
	assert.Equal(t, 3, calls)
}

func TestResourceOf(t *testing.T) {
	assert.Equal(t, "beer-orders", resourceOf("/beer-orders/4/status"))
	assert.Equal(t, "beer-order-shipments", resourceOf("/beer-order-shipments?beerOrderId=3"))
	assert.Equal(t, "beers", resourceOf("beers"))
	assert.Equal(t, "root", resourceOf("/"))
}
