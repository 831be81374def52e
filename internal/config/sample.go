package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# SpeedX configuration
version: "1.0"

backend:
  # Host of the page analysis service. Requests go to
  # {base_url}/api/performance/analyze
  base_url: "` + DefaultBackendURL() + `"
  # Client-side timeout for a single analysis. 0 waits indefinitely.
  timeout: 0s

ui:
  # default, high-contrast or minimal
  theme: "default"
  # Geometry of the circular score indicators
  indicator_size: 120
  stroke_width: 14
  # How long error notifications stay on screen
  toast_duration: 1s

output:
  # Format used by "speedx analyze": text, json, markdown or csv
  default_format: "text"
  # auto, always or never
  color_mode: "auto"
  verbose: false
  # Where the interactive client writes its log; empty discards it
  log_file: ""

behavior:
  # Ignore responses for requests that were superseded by a newer one.
  # When false the response that arrives last wins.
  discard_stale: false
`
}

// MinimalSampleConfig returns a compact configuration with only essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
backend:
  base_url: "` + DefaultBackendURL() + `"
ui:
  theme: "default"
`
}
