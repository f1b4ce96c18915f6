package domain

// Confidence levels reported by the model.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Prediction is the backend's verdict for a single transaction.
// Immutable once received; the client never derives or adjusts it.
type Prediction struct {
	IsFraud          bool    `json:"is_fraud"`
	FraudProbability float64 `json:"fraud_probability"` // 0..1
	Confidence       string  `json:"confidence"`        // low, medium, high
	RiskScore        int     `json:"risk_score"`        // 0..100
	PredictionTimeMs float64 `json:"prediction_time_ms"`
}

// BatchResult is a single item within a batch prediction response.
type BatchResult struct {
	Index            int     `json:"index"`
	IsFraud          bool    `json:"is_fraud"`
	FraudProbability float64 `json:"fraud_probability"`
	RiskScore        int     `json:"risk_score"`
}

// BatchPrediction is the aggregate envelope returned for batch requests.
type BatchPrediction struct {
	TotalTransactions int           `json:"total_transactions"`
	FraudCount        int           `json:"fraud_count"`
	LegitimateCount   int           `json:"legitimate_count"`
	FraudRate         float64       `json:"fraud_rate"`
	Results           []BatchResult `json:"results"`
	ProcessingTimeMs  float64       `json:"processing_time_ms"`
}
