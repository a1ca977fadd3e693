// Package provider is the HTTP collaborator boundary: a client for the
// mock contact-data API plus the two informational probes (public IP and a
// local air-quality sensor).
//
// The client reports errors to its caller; converting a failed fetch into
// the fallback contact is the middleware's policy, not the client's.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ContactData is the payload shape of the mock contact API. The email is
// split into user and domain halves on the wire.
type ContactData struct {
	Name        string `json:"name"`
	EmailUser   string `json:"email_u"`
	EmailDomain string `json:"email_d"`
	Phone       string `json:"phone_h"`
}

// Email joins the wire halves into a full address.
func (d ContactData) Email() string {
	return d.EmailUser + "@" + d.EmailDomain
}

// Fallback is the fixed payload used when the contact API is unreachable.
func Fallback() ContactData {
	return ContactData{
		Name:        "Foo Bar",
		EmailUser:   "foo",
		EmailDomain: "bar.com",
		Phone:       "123-456-7890",
	}
}

// AirData is the snapshot shape of the local air-sensor endpoint
// (Awair-style /air-data/latest).
type AirData struct {
	Score int     `json:"score"`
	Temp  float64 `json:"temp"`
	CO2   int     `json:"co2"`
	VOC   int     `json:"voc"`
	PM25  int     `json:"pm25"`
}

// Options configures a Client. Zero-value URLs disable the corresponding
// call with an explicit error rather than silently succeeding.
type Options struct {
	ContactURL string
	IPURL      string
	AirURL     string
	Timeout    time.Duration
}

// Client calls the mock data APIs. Safe for concurrent use.
type Client struct {
	http       *http.Client
	contactURL string
	ipURL      string
	airURL     string
}

// NewClient creates a client with the given endpoints. A zero Timeout
// defaults to 5 seconds.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		contactURL: opts.ContactURL,
		ipURL:      opts.IPURL,
		airURL:     opts.AirURL,
	}
}

// FetchContact retrieves one fake contact payload.
func (c *Client) FetchContact(ctx context.Context) (ContactData, error) {
	var data ContactData
	if err := c.getJSON(ctx, c.contactURL, &data); err != nil {
		return ContactData{}, fmt.Errorf("fetch contact: %w", err)
	}
	return data, nil
}

// FetchIP retrieves the caller's public IP address.
func (c *Client) FetchIP(ctx context.Context) (string, error) {
	var data struct {
		IP string `json:"ip"`
	}
	if err := c.getJSON(ctx, c.ipURL, &data); err != nil {
		return "", fmt.Errorf("fetch ip: %w", err)
	}
	return data.IP, nil
}

// FetchAirData retrieves the latest local air-sensor snapshot.
func (c *Client) FetchAirData(ctx context.Context) (AirData, error) {
	var data AirData
	if err := c.getJSON(ctx, c.airURL, &data); err != nil {
		return AirData{}, fmt.Errorf("fetch air data: %w", err)
	}
	return data, nil
}

// getJSON performs a GET and decodes the JSON body into out. Every request
// carries a UUIDv7 X-Request-ID for log correlation on the mock servers.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	if url == "" {
		return fmt.Errorf("no endpoint configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.Must(uuid.NewV7()).String())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
