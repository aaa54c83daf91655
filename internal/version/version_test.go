package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	v, c, b := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = v, c, b })

	Version, GitCommit, BuildTime = "1.2.3", "deadbee", "2026-01-01T00:00:00Z"
	assert.Equal(t, "1.2.3 (deadbee, 2026-01-01T00:00:00Z)", String())
}
