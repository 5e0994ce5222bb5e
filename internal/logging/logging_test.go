package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupLevels(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, &buf)

	slog.Debug("retrying request", "attempt", 1)
	if buf.Len() != 0 {
		t.Errorf("debug output should be suppressed by default: %q", buf.String())
	}

	slog.Info("request complete")
	if !strings.Contains(buf.String(), "request complete") {
		t.Errorf("info output missing: %q", buf.String())
	}

	buf.Reset()
	Setup(true, &buf)
	slog.Debug("retrying request", "attempt", 1)
	if !strings.Contains(buf.String(), "retrying request") {
		t.Errorf("debug output missing with debug enabled: %q", buf.String())
	}
}

func TestSetupJSONFormat(t *testing.T) {
	t.Setenv(FormatEnvVar, "json")

	var buf bytes.Buffer
	Setup(false, &buf)
	slog.Info("rate limited", "remaining", 12)

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected a JSON record: %v\n%s", err, buf.String())
	}
	if record["msg"] != "rate limited" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["remaining"] != float64(12) {
		t.Errorf("remaining = %v", record["remaining"])
	}
}
