package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchContact(t *testing.T) {
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Ann","email_u":"a","email_d":"b.com","phone_h":"555"}`))
	}))
	defer srv.Close()

	c := NewClient(Options{ContactURL: srv.URL})
	data, err := c.FetchContact(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Ann", data.Name)
	assert.Equal(t, "a@b.com", data.Email())
	assert.Equal(t, "555", data.Phone)

	// Request correlation header must be a valid UUID.
	_, err = uuid.Parse(gotRequestID)
	assert.NoError(t, err, "X-Request-ID should be a UUID, got %q", gotRequestID)
}

func TestFetchContact_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Options{ContactURL: srv.URL})
	_, err := c.FetchContact(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestFetchContact_NoEndpoint(t *testing.T) {
	c := NewClient(Options{})
	_, err := c.FetchContact(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no endpoint configured")
}

func TestFetchContact_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(Options{ContactURL: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.FetchContact(ctx)
	require.Error(t, err)
}

func TestFetchIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ip":"203.0.113.7"}`))
	}))
	defer srv.Close()

	c := NewClient(Options{IPURL: srv.URL})
	ip, err := c.FetchIP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", ip)
}

func TestFetchAirData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"score":92,"temp":21.4,"co2":640,"voc":120,"pm25":3}`))
	}))
	defer srv.Close()

	c := NewClient(Options{AirURL: srv.URL})
	air, err := c.FetchAirData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 92, air.Score)
	assert.InDelta(t, 21.4, air.Temp, 0.001)
	assert.Equal(t, 640, air.CO2)
}

func TestFallback(t *testing.T) {
	f := Fallback()
	assert.Equal(t, "Foo Bar", f.Name)
	assert.Equal(t, "foo@bar.com", f.Email())
	assert.Equal(t, "123-456-7890", f.Phone)
}
