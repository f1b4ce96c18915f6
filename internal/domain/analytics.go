package domain

import "time"

// StatsSnapshot is a read-only projection of backend usage counters.
// All values are computed server-side, never derived locally.
type StatsSnapshot struct {
	TotalPredictions      int     `json:"total_predictions"`
	FraudDetected         int     `json:"fraud_detected"`
	LegitimateDetected    int     `json:"legitimate_detected"`
	FraudRate             float64 `json:"fraud_rate"`
	AverageResponseTimeMs float64 `json:"average_response_time_ms"`
	UptimeSeconds         float64 `json:"uptime_seconds"`
}

// ModelInfo describes the deployed model and its training metrics.
type ModelInfo struct {
	ModelName       string     `json:"model_name"`
	ModelVersion    string     `json:"model_version"`
	FeaturesCount   int        `json:"features_count"`
	TrainingSamples int        `json:"training_samples"`
	FraudSamples    int        `json:"fraud_samples"`
	Accuracy        float64    `json:"accuracy"`
	Precision       float64    `json:"precision"`
	Recall          float64    `json:"recall"`
	F1Score         float64    `json:"f1_score"`
	ROCAUC          float64    `json:"roc_auc"`
	LastTrained     *time.Time `json:"last_trained,omitempty"`
}

// HealthStatus is the backend liveness report.
type HealthStatus struct {
	Status      string    `json:"status"`
	ModelLoaded bool      `json:"model_loaded"`
	Version     string    `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
}
