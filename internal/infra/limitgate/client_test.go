package limitgate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gomeraway-api/internal/domain/plans"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReturnsRemoteDecision(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/functions/v1/check-listing-limit", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"canCreate":true,"currentCount":2,"maxAllowed":5,"planName":"premium","isUnlimited":false}`))
	}))
	defer srv.Close()

	d, err := New(srv.URL+"/", "anon").Check(context.Background(), "u-1", "tok")
	require.NoError(t, err)
	assert.True(t, d.CanCreate)
	assert.Equal(t, 2, d.CurrentCount)
	assert.Equal(t, 5, d.MaxAllowed)
	assert.Equal(t, "premium", d.PlanName)
}

func TestCheckFailsClosed(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"canCreate":true}`))
		},
		"unauthorized": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		},
		"garbage body": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			d, err := New(srv.URL, "").Check(context.Background(), "u-1", "tok")
			assert.Error(t, err)
			assert.Equal(t, plans.Denied(), d)
			assert.False(t, d.CanCreate)
		})
	}
}

func TestCheckTransportErrorFailsClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	d, err := New(url, "").Check(context.Background(), "u-1", "tok")
	assert.Error(t, err)
	assert.False(t, d.CanCreate)
	assert.Equal(t, plans.MessageCheckFailed, d.Message)
}
