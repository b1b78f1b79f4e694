// ABOUTME: MCP resource implementations for the lifting log.
// ABOUTME: Provides liftlog://recent and liftlog://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// liftlog://recent - last 5 workouts with their entries
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "liftlog://recent",
		Name:        "Recent Workouts",
		Description: "Last 5 workouts with entries and sets",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// liftlog://summary - catalog size plus recent session overview
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "liftlog://summary",
		Name:        "Training Summary",
		Description: "Exercise catalog size and recent session overview",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.ListWorkouts()
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if len(workouts) > 5 {
		workouts = workouts[:5]
	}

	full := make([]interface{}, 0, len(workouts))
	for _, w := range workouts {
		detail, err := s.repo.GetWorkoutWithEntries(w.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get workout %s: %w", w.ID, err)
		}
		full = append(full, detail)
	}

	data, err := json.MarshalIndent(map[string]interface{}{"workouts": full}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "liftlog://recent",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.ListWorkouts()
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	exercises, err := s.repo.ListExercises()
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	summary := map[string]interface{}{
		"workout_count":  len(workouts),
		"exercise_count": len(exercises),
	}
	if len(workouts) > 0 {
		latest := workouts[0]
		entries, err := s.repo.ListEntries(latest.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list entries: %w", err)
		}
		summary["latest_workout"] = map[string]interface{}{
			"id":      latest.ID.String()[:8],
			"name":    latest.DisplayName(),
			"date":    latest.Date.Format("2006-01-02"),
			"entries": len(entries),
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "liftlog://summary",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
