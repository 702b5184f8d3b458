package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

func TestParseHeaders(t *testing.T) {
	assert.Nil(t, parseHeaders(""))
	assert.Nil(t, parseHeaders("novalue, =x"))
	assert.Equal(t, map[string]string{"api-key": "abc", "x-team": "core"},
		parseHeaders(" api-key=abc , x-team=core,broken"))
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.1, clampRatio(""))
	assert.Equal(t, 0.1, clampRatio("lots"))
	assert.Equal(t, 0.0, clampRatio("-3"))
	assert.Equal(t, 1.0, clampRatio("7"))
	assert.Equal(t, 0.25, clampRatio("0.25"))
}

func TestInitOTelDisabledIsNoop(t *testing.T) {
	shutdown := InitOTel(context.Background(), logger.Nop(), OtelConfig{Enabled: false})
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
