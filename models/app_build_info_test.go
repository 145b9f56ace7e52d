package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("v1.0.0", "", "abc")
	assert.True(t, info.Known())
	assert.Equal(t, "N/A", info.BuildDate())
	assert.Equal(t, "Build version: v1.0.0\nBuild date: N/A\nBuild commit: abc", info.String())

	assert.False(t, NewAppBuildInfo("", "", "").Known())
	assert.False(t, AppBuildInfo{}.Known())
	assert.Contains(t, AppBuildInfo{}.String(), "Build commit: N/A")
}
