package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"valid", "http://localhost:8000", false},
		{"with path", "https://example.com/speed", false},
		{"empty", "", true},
		{"no scheme", "localhost:8000", true},
		{"unparseable", "http://[::1]:namedport", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.baseURL)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && client == nil {
				t.Error("New() returned nil client without error")
			}
		})
	}
}

func TestClient_Endpoint(t *testing.T) {
	client, err := New("https://example.com/speed/")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := "https://example.com/speed/api/performance/analyze"
	if got := client.Endpoint(); got != want {
		t.Errorf("Endpoint() = %q, want %q", got, want)
	}
}

func TestClient_Analyze_RequestShape(t *testing.T) {
	var gotBody AnalyzeRequest
	var gotMethod, gotPath, gotContentType, gotRequestID, gotUA string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotUA = r.Header.Get("User-Agent")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"success": true, "data": {}}`))
	}))
	defer server.Close()

	client, err := New(server.URL, WithUserAgent("speedx/test"), WithRequestIDGenerator(func() string { return "req-1" }))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	resp, err := client.Analyze(context.Background(), "https://youtube.com")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("Expected POST request, got %s", gotMethod)
	}
	if gotPath != AnalyzePath {
		t.Errorf("Expected path %s, got %s", AnalyzePath, gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Expected JSON content type, got %s", gotContentType)
	}
	if gotBody.URL != "https://youtube.com" {
		t.Errorf("Expected url in body, got %q", gotBody.URL)
	}
	if gotRequestID != "req-1" || resp.RequestID != "req-1" {
		t.Errorf("Expected request id req-1, header=%q response=%q", gotRequestID, resp.RequestID)
	}
	if gotUA != "speedx/test" {
		t.Errorf("Expected user agent speedx/test, got %q", gotUA)
	}
}

func TestClient_Analyze_DefaultRequestIDIsUUID(t *testing.T) {
	var gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"success": false}`))
	}))
	defer server.Close()

	client, _ := New(server.URL)
	if _, err := client.Analyze(context.Background(), "a.com"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(gotRequestID) != 36 || strings.Count(gotRequestID, "-") != 4 {
		t.Errorf("Expected a UUID request id, got %q", gotRequestID)
	}
}

func TestClient_Analyze_Success(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{
		"success": true,
		"data": {
			"accessibilityScore": 42,
			"pageLoadTime": 1234.5,
			"performanceScore": 97.6,
			"bestPracticesScore": 100,
			"seoScore": 90,
			"totalRequestSize": 2048,
			"totalRequests": 12.0
		}
	}`)

	client, _ := New(server.URL)
	resp, err := client.Analyze(context.Background(), "a.com")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if resp.StatusCode != http.StatusOK || !resp.Success {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Data.AccessibilityScore == nil || *resp.Data.AccessibilityScore != 42 {
		t.Errorf("AccessibilityScore = %v, want 42", resp.Data.AccessibilityScore)
	}
	if resp.Data.PageLoadTime == nil || *resp.Data.PageLoadTime != 1234.5 {
		t.Errorf("PageLoadTime = %v, want 1234.5", resp.Data.PageLoadTime)
	}
	if resp.Data.TotalRequests == nil || *resp.Data.TotalRequests != 12 {
		t.Errorf("TotalRequests = %v, want 12", resp.Data.TotalRequests)
	}
}

func TestClient_Analyze_PartialAndNullFields(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{"success": true, "data": {"seoScore": 55, "performanceScore": null}}`)

	client, _ := New(server.URL)
	resp, err := client.Analyze(context.Background(), "a.com")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if resp.Data.SEOScore == nil || *resp.Data.SEOScore != 55 {
		t.Errorf("SEOScore = %v, want 55", resp.Data.SEOScore)
	}
	if resp.Data.PerformanceScore != nil {
		t.Errorf("null performanceScore should be absent, got %v", *resp.Data.PerformanceScore)
	}
	if resp.Data.AccessibilityScore != nil {
		t.Error("missing accessibilityScore should be absent")
	}
}

func TestClient_Analyze_LogicalFailure(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{"success": false, "data": {"seoScore": 10}}`)

	client, _ := New(server.URL)
	resp, err := client.Analyze(context.Background(), "a.com")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if resp.Success {
		t.Error("Expected success=false")
	}
	if !resp.Data.Empty() {
		t.Error("data of an unsuccessful response must not be decoded")
	}
}

func TestClient_Analyze_Non200Success(t *testing.T) {
	server := newTestServer(t, http.StatusAccepted, `{"success": true, "data": {"seoScore": 10}}`)

	client, _ := New(server.URL)
	resp, err := client.Analyze(context.Background(), "a.com")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("StatusCode = %d, want 202", resp.StatusCode)
	}
}

func TestClient_Analyze_Failures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantType    ErrorType
		wantMessage string
	}{
		{
			name:        "service message",
			status:      http.StatusInternalServerError,
			body:        `{"message": "Analysis failed"}`,
			wantType:    ErrTypeService,
			wantMessage: "Analysis failed",
		},
		{
			name:        "bad request",
			status:      http.StatusBadRequest,
			body:        `{"message": "URL is not reachable", "success": false}`,
			wantType:    ErrTypeService,
			wantMessage: "URL is not reachable",
		},
		{
			name:        "empty error body",
			status:      http.StatusBadGateway,
			body:        ``,
			wantType:    ErrTypeService,
			wantMessage: FallbackMessage,
		},
		{
			name:        "html error body",
			status:      http.StatusBadGateway,
			body:        `<html>502</html>`,
			wantType:    ErrTypeService,
			wantMessage: FallbackMessage,
		},
		{
			name:        "error body without message",
			status:      http.StatusNotFound,
			body:        `{"error": "not found"}`,
			wantType:    ErrTypeService,
			wantMessage: FallbackMessage,
		},
		{
			name:        "200 with garbage",
			status:      http.StatusOK,
			body:        `not json`,
			wantType:    ErrTypeMalformedResponse,
			wantMessage: FallbackMalformedMessage,
		},
		{
			name:        "wrong metric type",
			status:      http.StatusOK,
			body:        `{"success": true, "data": {"seoScore": "high"}}`,
			wantType:    ErrTypeMalformedResponse,
			wantMessage: FallbackMalformedMessage,
		},
		{
			name:        "fractional request count",
			status:      http.StatusOK,
			body:        `{"success": true, "data": {"totalRequests": 1.5}}`,
			wantType:    ErrTypeMalformedResponse,
			wantMessage: FallbackMalformedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.status, tt.body)
			client, _ := New(server.URL)

			resp, err := client.Analyze(context.Background(), "a.com")
			if err == nil {
				t.Fatalf("Expected error, got response %+v", resp)
			}

			var se *ServiceError
			if !errors.As(err, &se) {
				t.Fatalf("Expected *ServiceError, got %T", err)
			}
			if se.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", se.Type, tt.wantType)
			}
			if se.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", se.StatusCode, tt.status)
			}
			if se.RequestID == "" {
				t.Error("Expected request id on error")
			}
			if got := UserMessage(err); got != tt.wantMessage {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestClient_Analyze_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, _ := New(baseURL)
	_, err := client.Analyze(context.Background(), "a.com")
	if !IsType(err, ErrTypeNetwork) {
		t.Fatalf("Expected network error, got %v", err)
	}
	if got := UserMessage(err); got != FallbackNetworkMessage {
		t.Errorf("UserMessage() = %q, want %q", got, FallbackNetworkMessage)
	}
}

func TestClient_Analyze_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, _ := New(server.URL, WithTimeout(50*time.Millisecond))
	_, err := client.Analyze(context.Background(), "a.com")
	if !IsType(err, ErrTypeTimeout) {
		t.Fatalf("Expected timeout error, got %v", err)
	}
	if got := UserMessage(err); got != FallbackTimeoutMessage {
		t.Errorf("UserMessage() = %q, want %q", got, FallbackTimeoutMessage)
	}
}

func TestClient_Analyze_ContextCanceled(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{"success": true}`)
	client, _ := New(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Analyze(ctx, "a.com"); err == nil {
		t.Fatal("Expected error for canceled context")
	}
}
