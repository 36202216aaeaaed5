package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/models"
)

// StatusError reports a non-2xx response from the snapshot feed.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// FetchSnapshots retrieves the current zone snapshots payload.
func FetchSnapshots(ctx context.Context, client *http.Client, url string) (models.SnapshotFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.SnapshotFeed{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return models.SnapshotFeed{}, fmt.Errorf("request snapshot feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.SnapshotFeed{}, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	var payload models.SnapshotFeed
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.SnapshotFeed{}, fmt.Errorf("decode payload: %w", err)
	}

	return payload, nil
}
