package aggregator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"ethdk/internal/domain"
)

// RequestIDHeader carries a per-submission id for correlating logs.
const RequestIDHeader = "X-Request-ID"

// maxBody bounds how much of a response is read.
const maxBody = 1 << 20

// Client submits bundles to one aggregator over JSON/HTTP.
type Client struct {
	Base string
	HTTP *http.Client
}

// New returns a client for the aggregator at base. A nil httpClient means
// http.DefaultClient.
func New(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: httpClient}
}

var _ domain.AggregatorClient = (*Client)(nil)

// AddBundle posts bundle to <Base>/bundle.
func (c *Client) AddBundle(ctx context.Context, bundle domain.Bundle) (domain.AddBundleResponse, error) {
	u := c.Base + "/bundle"

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(bundle); err != nil {
		return nil, errors.Wrap(err, "encoding bundle")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, buf)
	if err != nil {
		return nil, &domain.ConnectionError{Endpoint: u, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &domain.ConnectionError{Endpoint: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &domain.ConnectionError{Endpoint: u, Err: errors.Wrap(err, "reading response")}
	}

	out, derr := Decode(body)
	if derr == nil {
		return out, nil
	}
	if resp.StatusCode/100 != 2 {
		return nil, &domain.ConnectionError{
			Endpoint: u,
			Err:      fmt.Errorf("aggregator post %s: %s", u, resp.Status),
		}
	}
	return nil, &domain.ConnectionError{Endpoint: u, Err: derr}
}

// Decode turns an aggregator response body into BundleAccepted or
// BundleRejected. Any body with a "failures" key is a rejection, even if it
// also has a hash or its failures are not {type, description} objects; the
// typed Failures are then filled on a best-effort basis and Raw always holds
// the body.
func Decode(body []byte) (domain.AddBundleResponse, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, errors.Wrap(err, "decoding aggregator response")
	}

	if rawFailures, ok := fields["failures"]; ok {
		raw := make(json.RawMessage, len(body))
		copy(raw, body)
		var failures []domain.TransactionFailure
		if err := json.Unmarshal(rawFailures, &failures); err != nil {
			failures = nil
		}
		return domain.BundleRejected{Failures: failures, Raw: raw}, nil
	}

	var hash string
	if rawHash, ok := fields["hash"]; ok {
		if err := json.Unmarshal(rawHash, &hash); err != nil {
			return nil, errors.Wrap(err, "decoding aggregator hash")
		}
	}
	if hash == "" {
		return nil, errors.New("aggregator response has neither hash nor failures")
	}
	return domain.BundleAccepted{Hash: hash}, nil
}
