package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/speedx/internal/formatter"
	"github.com/yildizm/speedx/internal/orchestrator"
	"github.com/yildizm/speedx/internal/service"
)

const successBody = `{"success": true, "data": {
	"accessibilityScore": 88, "performanceScore": 97.6, "bestPracticesScore": 100,
	"seoScore": 91, "pageLoadTime": 812.5, "totalRequestSize": 4096, "totalRequests": 17}}`

func newBackend(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != service.AnalyzePath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

// writeConfig writes a config file pointing at baseURL and returns its path
func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "speedx.yaml")
	content := "version: \"1.0\"\nbackend:\n  base_url: \"" + baseURL + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(func() { globalConfig = nil })

	cmd := NewRootCommand("1.2.3", "abc123", "2024-05-01")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestAnalyzeCommand_Text(t *testing.T) {
	backend := newBackend(t, http.StatusOK, successBody)
	cfg := writeConfig(t, backend.URL)

	out, _, err := executeCommand(t, "--config", cfg, "--no-emoji", "analyze", "https://youtube.com")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	for _, want := range []string{"Page Analysis Summary", "https://youtube.com", "812.50 ms", "4096 bytes", "Performance", " 98 "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	backend := newBackend(t, http.StatusOK, successBody)
	cfg := writeConfig(t, backend.URL)

	out, _, err := executeCommand(t, "--config", cfg, "analyze", "--format", "json", "https://youtube.com")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var decoded formatter.JSONOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if decoded.URL != "https://youtube.com" {
		t.Errorf("URL = %q", decoded.URL)
	}
	if decoded.RequestID == "" {
		t.Error("request id should be reported")
	}
	if decoded.Metrics.TotalRequests != 17 {
		t.Errorf("TotalRequests = %d, want 17", decoded.Metrics.TotalRequests)
	}
}

func TestAnalyzeCommand_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		args       []string
		wantStderr string
		reported   bool
		wantErr    error
	}{
		{
			name:       "service error message",
			status:     http.StatusBadRequest,
			body:       `{"message": "URL is not reachable"}`,
			args:       []string{"https://nope.example"},
			wantStderr: "URL is not reachable",
			reported:   true,
		},
		{
			name:       "empty url",
			status:     http.StatusOK,
			body:       successBody,
			args:       []string{""},
			wantStderr: orchestrator.InvalidURLMessage,
			reported:   true,
		},
		{
			name:    "success false",
			status:  http.StatusOK,
			body:    `{"success": false}`,
			args:    []string{"https://youtube.com"},
			wantErr: errNoMetrics,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newBackend(t, tt.status, tt.body)
			cfg := writeConfig(t, backend.URL)

			args := append([]string{"--config", cfg, "analyze"}, tt.args...)
			out, stderr, err := executeCommand(t, args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if out != "" {
				t.Errorf("nothing should be printed on stdout, got %q", out)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
			if IsReported(err) != tt.reported {
				t.Errorf("IsReported() = %v, want %v", IsReported(err), tt.reported)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnalyzeCommand_SendsURLVerbatim(t *testing.T) {
	var got service.AnalyzeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "URL is not reachable"}`))
	}))
	t.Cleanup(server.Close)
	cfg := writeConfig(t, server.URL)

	_, stderr, err := executeCommand(t, "--config", cfg, "analyze", "  ")
	if err == nil {
		t.Fatal("expected an error")
	}
	if got.URL != "  " {
		t.Errorf("service received url %q, want it unchanged", got.URL)
	}
	if strings.Contains(stderr, orchestrator.InvalidURLMessage) {
		t.Errorf("whitespace is not an empty url, stderr = %q", stderr)
	}
}

func TestAnalyzeCommand_OutputFile(t *testing.T) {
	backend := newBackend(t, http.StatusOK, successBody)
	cfg := writeConfig(t, backend.URL)
	target := filepath.Join(t.TempDir(), "report.md")

	out, _, err := executeCommand(t, "--config", cfg, "analyze", "--format", "markdown", "--output-file", target, "https://youtube.com")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty when writing to a file, got %q", out)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "# Page Analysis Report") {
		t.Errorf("unexpected report:\n%s", data)
	}
}

func TestAnalyzeCommand_BackendURLFlag(t *testing.T) {
	backend := newBackend(t, http.StatusOK, successBody)
	cfg := writeConfig(t, "http://127.0.0.1:1")

	_, _, err := executeCommand(t, "--config", cfg, "--backend-url", backend.URL, "analyze", "--format", "csv", "https://youtube.com")
	if err != nil {
		t.Fatalf("--backend-url should override the config file: %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "svg",
			args: []string{"render", "97.6", "--svg", "--label", "Performance"},
			want: []string{"<svg", "stroke-dashoffset", ">98<", "Performance"},
		},
		{
			name: "terminal",
			args: []string{"render", "42", "--label", "SEO", "--size", "80", "--stroke-width", "10"},
			want: []string{"42", "SEO"},
		},
		{
			name:    "not a number",
			args:    []string{"render", "fast"},
			wantErr: true,
		},
		{
			name:    "stroke wider than ring",
			args:    []string{"render", "50", "--size", "10", "--stroke-width", "10"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeConfig(t, "http://localhost:8000")
			out, _, err := executeCommand(t, append([]string{"--config", cfg}, tt.args...)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "speedx.yaml")

	out, _, err := executeCommand(t, "--no-emoji", "config", "init", "--output", path)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("init output = %q", out)
	}

	if _, _, err := executeCommand(t, "config", "init", "--output", path); err == nil {
		t.Error("init should refuse to overwrite without --force")
	}

	out, _, err = executeCommand(t, "--config", path, "config", "validate")
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(out, "Configuration is valid") {
		t.Errorf("validate output = %q", out)
	}

	out, _, err = executeCommand(t, "--config", path, "--theme", "minimal", "config", "show", "--format", "json")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, `"theme": "minimal"`) {
		t.Errorf("show should apply flag overrides:\n%s", out)
	}
}

func TestConfigValidate_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  theme: neon\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := executeCommand(t, "--config", path, "config", "validate")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !IsReported(err) || !strings.Contains(out, "validation failed") {
		t.Errorf("validate output = %q, err = %v", out, err)
	}
}

func TestVersionCommand(t *testing.T) {
	cfg := writeConfig(t, "http://localhost:8000")
	out, _, err := executeCommand(t, "--config", cfg, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "SpeedX 1.2.3 (abc123) built on 2024-05-01") {
		t.Errorf("version output = %q", out)
	}
}

func TestReportedError(t *testing.T) {
	base := errors.New("boom")
	err := reported(base)

	if !IsReported(err) {
		t.Error("IsReported() = false for a reported error")
	}
	if !errors.Is(err, base) {
		t.Error("reported error should unwrap to its cause")
	}
	if IsReported(base) {
		t.Error("IsReported() = true for a plain error")
	}
}
