package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"fraudwatch-client/internal/domain"
	"fraudwatch-client/internal/history"
	"fraudwatch-client/internal/notify"
	"fraudwatch-client/internal/session"
)

func newTestClient(serverURL string) (*Client, *session.Store, *notify.Bus) {
	store := session.New(session.Options{})
	bus := notify.NewBus()
	return New(serverURL, store, bus), store, bus
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, domain.StatsSnapshot{})
	}))
	defer server.Close()

	client, _, _ := newTestClient(server.URL)

	if _, err := client.Stats(context.Background()); err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClient_TokenAttachedExactly(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, domain.StatsSnapshot{})
	}))
	defer server.Close()

	client, store, _ := newTestClient(server.URL)
	store.Set("abc", nil)

	if _, err := client.Stats(context.Background()); err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if gotAuth != "Bearer abc" {
		t.Errorf("expected Authorization %q, got %q", "Bearer abc", gotAuth)
	}
}

func TestClient_LoginStoresTokenThenStatsCarriesIt(t *testing.T) {
	var statsAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var creds struct {
				Username string `json:"username"`
				Password string `json:"password"`
			}
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
				t.Fatalf("decode credentials: %v", err)
			}
			if creds.Username != "Nostradam" || creds.Password != "test123456" {
				t.Errorf("unexpected credentials: %+v", creds)
			}
			writeJSON(t, w, http.StatusOK, domain.Token{AccessToken: "abc", TokenType: "bearer", ExpiresIn: 3600})
		case "/analytics/stats":
			statsAuth = r.Header.Get("Authorization")
			writeJSON(t, w, http.StatusOK, domain.StatsSnapshot{TotalPredictions: 7})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, store, _ := newTestClient(server.URL)

	token, err := client.Login(context.Background(), "Nostradam", "test123456")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token.AccessToken != "abc" {
		t.Errorf("expected access token abc, got %s", token.AccessToken)
	}
	if store.Token() != "abc" {
		t.Errorf("expected stored token abc, got %q", store.Token())
	}

	stats, err := client.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalPredictions != 7 {
		t.Errorf("expected 7 predictions, got %d", stats.TotalPredictions)
	}
	if statsAuth != "Bearer abc" {
		t.Errorf("expected Authorization %q, got %q", "Bearer abc", statsAuth)
	}
}

func TestClient_LoginFailure_NoBroadcast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
	}))
	defer server.Close()

	client, store, bus := newTestClient(server.URL)

	var broadcasts atomic.Int32
	unsubscribe := bus.Subscribe(func() { broadcasts.Add(1) })
	defer unsubscribe()

	_, err := client.Login(context.Background(), "wronguser", "wrongpassword")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsUnauthorized(err) {
		t.Errorf("expected unauthorized fault, got %v", err)
	}
	if store.HasToken() {
		t.Error("expected empty session store after failed login")
	}
	if n := broadcasts.Load(); n != 0 {
		t.Errorf("expected no session-expired broadcast on pre-session failure, got %d", n)
	}
}

func TestClient_MidSessionUnauthorized_TeardownOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Token expired"})
	}))
	defer server.Close()

	client, store, bus := newTestClient(server.URL)
	store.Set("expired-token", &domain.UserProfile{Username: "Nostradam"})

	var broadcasts atomic.Int32
	unsubscribe := bus.Subscribe(func() { broadcasts.Add(1) })
	defer unsubscribe()

	// Two consecutive failing calls: only the first observes a live session.
	for i := 0; i < 2; i++ {
		_, err := client.Stats(context.Background())
		if !IsUnauthorized(err) {
			t.Fatalf("call %d: expected unauthorized fault, got %v", i, err)
		}
	}

	if store.HasToken() {
		t.Error("expected session store cleared")
	}
	if snap := store.Get(); snap.User != nil {
		t.Error("expected user cleared with token")
	}
	if n := broadcasts.Load(); n != 1 {
		t.Errorf("expected exactly 1 session-expired broadcast, got %d", n)
	}
}

func TestClient_Logout_ClearsAndBroadcasts(t *testing.T) {
	client, store, bus := newTestClient("http://unused")
	store.Set("abc", nil)

	var broadcasts atomic.Int32
	unsubscribe := bus.Subscribe(func() { broadcasts.Add(1) })
	defer unsubscribe()

	client.Logout()

	if store.HasToken() {
		t.Error("expected session store cleared after logout")
	}
	if n := broadcasts.Load(); n != 1 {
		t.Errorf("expected 1 broadcast, got %d", n)
	}
}

func TestClient_Refresh_ReplacesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/refresh" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer old" {
			t.Errorf("expected refresh to carry old token, got %q", got)
		}
		writeJSON(t, w, http.StatusOK, domain.Token{AccessToken: "new"})
	}))
	defer server.Close()

	client, store, _ := newTestClient(server.URL)
	store.Set("old", &domain.UserProfile{Username: "Nostradam"})

	if _, err := client.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	snap := store.Get()
	if snap.Token != "new" {
		t.Errorf("expected token replaced, got %q", snap.Token)
	}
	if snap.User == nil || snap.User.Username != "Nostradam" {
		t.Error("expected cached user preserved across refresh")
	}
}

func TestClient_Register_DoesNotTouchSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusCreated, domain.UserProfile{ID: "user_1", Username: "newuser"})
	}))
	defer server.Close()

	client, store, _ := newTestClient(server.URL)

	profile, err := client.Register(context.Background(), domain.Registration{
		Username: "newuser", Email: "new@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if profile.Username != "newuser" {
		t.Errorf("expected newuser, got %s", profile.Username)
	}
	if store.HasToken() {
		t.Error("register must not populate the session store")
	}
}

func TestClient_CurrentUser_CachesProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, domain.UserProfile{Username: "Nostradam", FullName: "Michel de Nostredame"})
	}))
	defer server.Close()

	client, store, _ := newTestClient(server.URL)
	store.Set("abc", nil)

	profile, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if profile.Username != "Nostradam" {
		t.Errorf("unexpected username %s", profile.Username)
	}

	snap := store.Get()
	if snap.User == nil || snap.User.Username != "Nostradam" {
		t.Error("expected profile cached in session store")
	}
}

func TestClient_ValidationFaultDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]string{"detail": "Password too short"})
	}))
	defer server.Close()

	client, _, _ := newTestClient(server.URL)

	_, err := client.Register(context.Background(), domain.Registration{Username: "x"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsValidation(err) {
		t.Fatalf("expected validation fault, got %v", err)
	}

	fault := err.(*Fault)
	if fault.Status != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", fault.Status)
	}
	if fault.Detail != "Password too short" {
		t.Errorf("expected server detail surfaced verbatim, got %q", fault.Detail)
	}
}

func TestClient_ServerFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusServiceUnavailable, map[string]string{"detail": "Model not loaded"})
	}))
	defer server.Close()

	client, _, _ := newTestClient(server.URL)

	_, err := client.Health(context.Background())
	if !IsServer(err) {
		t.Fatalf("expected server fault, got %v", err)
	}
}

func TestClient_NetworkFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Unreachable backend

	client, _, _ := newTestClient(server.URL)

	_, err := client.Health(context.Background())
	if !IsNetwork(err) {
		t.Fatalf("expected network fault, got %v", err)
	}
}

func TestClient_PredictSampleFraud_HistoryScenario(t *testing.T) {
	sample := domain.TransactionFeatures{Time: 406, V1: -2.3122, V14: -9.3839, Amount: 239.93}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/predict/sample/fraud":
			writeJSON(t, w, http.StatusOK, sample)
		case "/predict":
			var got domain.TransactionFeatures
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Fatalf("decode features: %v", err)
			}
			if got.Amount != sample.Amount {
				t.Errorf("expected amount %v, got %v", sample.Amount, got.Amount)
			}
			writeJSON(t, w, http.StatusOK, domain.Prediction{
				IsFraud:          true,
				FraudProbability: 0.97,
				Confidence:       domain.ConfidenceHigh,
				RiskScore:        97,
				PredictionTimeMs: 4.2,
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, _, _ := newTestClient(server.URL)
	ring := history.NewRing(history.DefaultCapacity)

	features, err := client.SampleFraud(context.Background())
	if err != nil {
		t.Fatalf("SampleFraud: %v", err)
	}

	pred, err := client.Predict(context.Background(), *features)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	ring.Push(*features, *pred)

	entries := ring.All()
	if len(entries) != 1 {
		t.Fatalf("expected ring of size 1, got %d", len(entries))
	}
	if entries[0].Result.IsFraud != pred.IsFraud {
		t.Error("history entry result does not match prediction")
	}
}

func TestClient_PredictBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Transactions []domain.TransactionFeatures `json:"transactions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode batch request: %v", err)
		}
		if len(req.Transactions) != 2 {
			t.Errorf("expected 2 transactions, got %d", len(req.Transactions))
		}
		writeJSON(t, w, http.StatusOK, domain.BatchPrediction{
			TotalTransactions: 2,
			FraudCount:        1,
			LegitimateCount:   1,
			FraudRate:         0.5,
			Results: []domain.BatchResult{
				{Index: 0, IsFraud: false, FraudProbability: 0.01, RiskScore: 1},
				{Index: 1, IsFraud: true, FraudProbability: 0.93, RiskScore: 93},
			},
			ProcessingTimeMs: 11.5,
		})
	}))
	defer server.Close()

	client, _, _ := newTestClient(server.URL)

	batch, err := client.PredictBatch(context.Background(), []domain.TransactionFeatures{
		{Amount: 10}, {Amount: 5000},
	})
	if err != nil {
		t.Fatalf("PredictBatch: %v", err)
	}
	if batch.TotalTransactions != 2 || batch.FraudCount != 1 {
		t.Errorf("unexpected batch envelope: %+v", batch)
	}
	if len(batch.Results) != 2 || !batch.Results[1].IsFraud {
		t.Errorf("unexpected batch results: %+v", batch.Results)
	}
}

func TestClient_FeatureImportance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analytics/features" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, map[string]float64{"v14": 0.18, "v17": 0.12, "amount": 0.03})
	}))
	defer server.Close()

	client, _, _ := newTestClient(server.URL)

	importance, err := client.FeatureImportance(context.Background())
	if err != nil {
		t.Fatalf("FeatureImportance: %v", err)
	}
	if importance["v14"] != 0.18 {
		t.Errorf("expected v14 importance 0.18, got %v", importance["v14"])
	}
}

func TestClient_CustomInterceptorsRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Trace"); got != "t1" {
			t.Errorf("expected custom request header, got %q", got)
		}
		writeJSON(t, w, http.StatusOK, domain.HealthStatus{Status: "healthy", ModelLoaded: true})
	}))
	defer server.Close()

	store := session.New(session.Options{})
	bus := notify.NewBus()

	var sawResponse atomic.Bool
	client := New(server.URL, store, bus,
		WithRequestInterceptor(func(req *http.Request) {
			req.Header.Set("X-Trace", "t1")
		}),
		WithResponseInterceptor(func(resp *http.Response, fault *Fault) {
			if fault == nil && resp != nil {
				sawResponse.Store(true)
			}
		}),
	)

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if !health.ModelLoaded {
		t.Error("expected model loaded")
	}
	if !sawResponse.Load() {
		t.Error("expected custom response interceptor to run")
	}
}
