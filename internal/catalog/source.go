// ABOUTME: ExerciseSource abstraction and its HTTP JSON implementation.
// ABOUTME: The reconciler only depends on the interface, never the transport.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RemoteExercise is one record of the authoritative reference list.
type RemoteExercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
}

// ExerciseSource fetches the complete current reference exercise list.
// Implementations must be safe to call repeatedly; the reconciler may run
// on demand or on every login.
type ExerciseSource interface {
	FetchExercises(ctx context.Context) ([]RemoteExercise, error)
}

// HTTPSource fetches the reference list as a JSON array from a URL.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTPSource for the given URL.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchExercises retrieves and decodes the full reference list.
func (s *HTTPSource) FetchExercises(ctx context.Context) ([]RemoteExercise, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch exercises: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch exercises: unexpected status %s", resp.Status)
	}

	var exercises []RemoteExercise
	if err := json.NewDecoder(resp.Body).Decode(&exercises); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}

	return exercises, nil
}
