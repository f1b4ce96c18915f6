package api

import (
	"context"
	"net/http"

	"fraudwatch-client/internal/domain"
)

// Stats fetches backend usage counters.
func (c *Client) Stats(ctx context.Context) (*domain.StatsSnapshot, error) {
	var stats domain.StatsSnapshot
	if err := c.do(ctx, http.MethodGet, "/analytics/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ModelInfo fetches the deployed model's description and training metrics.
func (c *Client) ModelInfo(ctx context.Context) (*domain.ModelInfo, error) {
	var info domain.ModelInfo
	if err := c.do(ctx, http.MethodGet, "/analytics/model", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// FeatureImportance fetches per-feature importances (0..1).
func (c *Client) FeatureImportance(ctx context.Context) (map[string]float64, error) {
	importance := make(map[string]float64)
	if err := c.do(ctx, http.MethodGet, "/analytics/features", nil, &importance); err != nil {
		return nil, err
	}
	return importance, nil
}

// Health checks backend liveness and whether the model is loaded.
func (c *Client) Health(ctx context.Context) (*domain.HealthStatus, error) {
	var health domain.HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
