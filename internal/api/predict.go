package api

import (
	"context"
	"net/http"

	"fraudwatch-client/internal/domain"
)

// batchRequest is the envelope for POST /predict/batch.
type batchRequest struct {
	Transactions []domain.TransactionFeatures `json:"transactions"`
}

// Predict scores a single transaction.
func (c *Client) Predict(ctx context.Context, features domain.TransactionFeatures) (*domain.Prediction, error) {
	var pred domain.Prediction
	if err := c.do(ctx, http.MethodPost, "/predict", features, &pred); err != nil {
		return nil, err
	}
	return &pred, nil
}

// PredictBatch scores a list of transactions in one round trip. The
// backend returns an aggregate envelope with per-item results.
func (c *Client) PredictBatch(ctx context.Context, features []domain.TransactionFeatures) (*domain.BatchPrediction, error) {
	var batch domain.BatchPrediction
	if err := c.do(ctx, http.MethodPost, "/predict/batch", batchRequest{Transactions: features}, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// SampleLegitimate fetches a typical legitimate transaction.
func (c *Client) SampleLegitimate(ctx context.Context) (*domain.TransactionFeatures, error) {
	var features domain.TransactionFeatures
	if err := c.do(ctx, http.MethodGet, "/predict/sample/legitimate", nil, &features); err != nil {
		return nil, err
	}
	return &features, nil
}

// SampleFraud fetches a typical fraudulent transaction.
func (c *Client) SampleFraud(ctx context.Context) (*domain.TransactionFeatures, error) {
	var features domain.TransactionFeatures
	if err := c.do(ctx, http.MethodGet, "/predict/sample/fraud", nil, &features); err != nil {
		return nil, err
	}
	return &features, nil
}
