package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	v, c, b := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = v, c, b })

	Version, GitCommit, BuildTime = "1.2.3", "unknown", "unknown"
	assert.Equal(t, "gotruss v1.2.3", String())

	GitCommit, BuildTime = "abc123", "2026-01-02"
	assert.Equal(t, "gotruss v1.2.3 (abc123) built 2026-01-02", String())
}
