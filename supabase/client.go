// Package supabase talks to the hosted backend that owns persistence, auth
// and row-level authorization. Only the read/mutate surface the catalog
// needs is wrapped; everything else stays on the platform side.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

type Client struct {
	key     string
	baseURL string
	http    *retryablehttp.Client
	limiter *rate.Limiter
}

func NewClient(baseURL, anonKey string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 6 * time.Second
	rc.Logger = nil

	return &Client{
		key:     anonKey,
		baseURL: baseURL,
		http:    rc,
		// protect the hosted project's request quota
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}
}

// FetchPublishedListings reads the published rows of the listings table with
// the seller profile joined in. The payload is returned raw; the catalog
// package owns decoding because records may arrive in either field dialect.
func (c *Client) FetchPublishedListings(ctx context.Context) ([]byte, error) {
	q := url.Values{}
	q.Set("status", "eq.published")
	q.Set("select", "*,seller:profiles(full_name,avatar_url)")
	q.Set("order", "created_at.desc")

	u := fmt.Sprintf("%s/rest/v1/listings?%s", c.baseURL, q.Encode())
	return c.do(ctx, http.MethodGet, u, nil)
}

// ToggleLike adds or removes the (user, listing) like row.
func (c *Client) ToggleLike(ctx context.Context, userID, listingID string, liked bool) error {
	if liked {
		body := map[string]string{"user_id": userID, "listing_id": listingID}
		u := fmt.Sprintf("%s/rest/v1/listing_likes", c.baseURL)
		_, err := c.do(ctx, http.MethodPost, u, body)
		return err
	}
	q := url.Values{}
	q.Set("user_id", "eq."+userID)
	q.Set("listing_id", "eq."+listingID)
	u := fmt.Sprintf("%s/rest/v1/listing_likes?%s", c.baseURL, q.Encode())
	_, err := c.do(ctx, http.MethodDelete, u, nil)
	return err
}

// RecordContactEvent inserts a contact-event row. Callers treat this as
// best-effort telemetry; a failure must never block the contact flow.
func (c *Client) RecordContactEvent(ctx context.Context, userID, listingID, contactType string) error {
	body := map[string]string{
		"user_id":      userID,
		"listing_id":   listingID,
		"contact_type": contactType,
	}
	u := fmt.Sprintf("%s/rest/v1/expert_contacts", c.baseURL)
	_, err := c.do(ctx, http.MethodPost, u, body)
	return err
}

func (c *Client) do(ctx context.Context, method, u string, body any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(b)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return nil, fmt.Errorf("supabase error %d: %v", resp.StatusCode, errBody)
	}
	return ioReadAllLimit(resp.Body, 4<<20) // 4MB guard
}

func ioReadAllLimit(r io.Reader, limit int64) ([]byte, error) {
	lr := io.LimitReader(r, limit+1)
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}
