package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// getJSON performs the single unauthenticated GET every platform
// fetcher is built on. Non-2xx answers become a FetchError, bodies
// that fail to decode become a DecodeError. No retries.
func getJSON(ctx context.Context, hc *http.Client, platform Platform, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s request: %w", platform, err)
	}
	req.Header.Set("User-Agent", "jobflow/1.0 (+local)")
	req.Header.Set("Accept", "application/json")

	res, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s get: %w", platform, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &FetchError{Platform: platform, Status: res.StatusCode}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &DecodeError{Platform: platform, Err: err}
	}
	return nil
}
