package signalhandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOptimalProcs(t *testing.T) {
	assert.GreaterOrEqual(t, GetOptimalProcs(), 1)
}

func TestClampWorkers(t *testing.T) {
	limit := GetOptimalProcs()

	assert.Equal(t, 1, ClampWorkers(0))
	assert.Equal(t, 1, ClampWorkers(-3))
	assert.Equal(t, 1, ClampWorkers(1))
	assert.Equal(t, limit, ClampWorkers(limit+100))
	assert.Equal(t, limit, ClampWorkers(limit))
}
