package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		value string
		want  logrus.Level
	}{
		{"", logrus.WarnLevel},
		{"debug", logrus.DebugLevel},
		{" INFO ", logrus.InfoLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"trace", logrus.TraceLevel},
		{"Panic", logrus.PanicLevel},
		{"chatty", logrus.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.value))
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	logger := New(&buf, "error", false)
	logger.Warn("hidden")
	assert.Empty(t, buf.String())

	logger = New(&buf, "error", true)
	logger.WithField("component", "button").Debug("fetching")
	assert.Contains(t, buf.String(), "fetching")
	assert.Contains(t, buf.String(), "component=button")
}
