package version

import (
	"runtime/debug"
	"testing"

	"commentedit/internal/platform/testkit"
)

func TestInfoFallsBackToVCSRevision(t *testing.T) {
	testkit.Swap(t, &commit, "")
	testkit.Swap(t, &readBuildInfo, func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}}}, true
	})
	if got := Info(); got.Commit != "abc123" || got.Service != "commentedit-api" || got.Go == "" {
		t.Fatalf("info: %+v", got)
	}
}

func TestInfoLdflagsWin(t *testing.T) {
	testkit.Swap(t, &commit, "deadbeef")
	if got := Info().Commit; got != "deadbeef" {
		t.Fatalf("commit: %q", got)
	}
}
