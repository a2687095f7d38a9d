package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/instavoice/assistant/pkg/utils/logging"
)

func TestConsoleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New("info", logging.FormatConsole, buf)

	logger.Info("console message", "room", "support-1")
	gt.S(t, buf.String()).Contains("console message")
}

func TestJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New("info", logging.FormatJSON, buf)

	logger.Info("json message", "user_id", "user_abc")

	var record map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	gt.Equal(t, record["msg"], "json message")
	gt.Equal(t, record["user_id"], "user_abc")
}

func TestUnknownFormatFallsBackToConsole(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New("info", logging.Format("xml"), buf)

	logger.Info("fallback message")
	output := buf.String()
	gt.S(t, output).Contains("fallback message")
	gt.S(t, output).NotContains(`"msg"`)
}

func TestLevels(t *testing.T) {
	testCases := []struct {
		level       string
		expectDebug bool
		expectWarn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"warning", false, true},
		{"error", false, false},
		{"DEBUG", true, true},
		{"bogus", false, true}, // falls back to info
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.New(tc.level, logging.FormatConsole, buf)

			logger.Debug("debug message")
			logger.Warn("warn message")

			output := buf.String()
			if tc.expectDebug {
				gt.S(t, output).Contains("debug message")
			} else {
				gt.S(t, output).NotContains("debug message")
			}
			if tc.expectWarn {
				gt.S(t, output).Contains("warn message")
			} else {
				gt.S(t, output).NotContains("warn message")
			}
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New("debug", logging.FormatConsole, buf).With("component", "session")

	ctx := logging.With(context.Background(), logger)
	gt.Equal(t, logging.From(ctx), logger)

	logging.From(ctx).Info("attached message")
	output := buf.String()
	gt.S(t, output).Contains("attached message")
	gt.S(t, output).Contains("session")
}

func TestFromWithoutLoggerUsesDefault(t *testing.T) {
	original := logging.Default()
	defer logging.SetDefault(original)

	buf := &bytes.Buffer{}
	logging.SetDefault(logging.New("warn", logging.FormatConsole, buf))

	logger := logging.From(context.Background())
	logger.Warn("default warning")
	gt.S(t, buf.String()).Contains("default warning")
}
