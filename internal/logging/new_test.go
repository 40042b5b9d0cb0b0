package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Backends(t *testing.T) {
	for _, backend := range []string{"", BackendSlog, BackendZap} {
		t.Run("backend="+backend, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(backend, "info", &buf)
			require.NoError(t, err)

			log.Debug(context.Background(), "hidden")
			log.Info(context.Background(), "shown", "key", "value")

			var line map[string]any
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), buf.String())
			assert.Equal(t, "value", line["key"])
			assert.NotContains(t, buf.String(), "hidden")
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New("logrus", "info", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New(BackendSlog, "loud", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New(BackendZap, "loud", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	l := Nop().With("a", 1)
	l.Info(context.Background(), "nothing")
}
