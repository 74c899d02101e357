package testing

import (
	"os"
	"path/filepath"

	"github.com/go-drift/immediate/pkg/engine"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// UpdateSnapshotsEnv names the environment variable that rewrites golden
// files instead of comparing against them.
const UpdateSnapshotsEnv = "IMMEDIATE_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// CaptureSnapshot returns the current tree. Node IDs and every statistic
// except the node count are left out, so a golden file matches any frame
// of the same scene regardless of arena slot reuse.
func (t *WidgetTester) CaptureSnapshot() engine.Snapshot {
	snap := t.ui.Snapshot()
	stripIDs(&snap.Root)
	snap.Stats = engine.Stats{Nodes: snap.Stats.Nodes}
	return snap
}

func stripIDs(n *engine.TreeNode) {
	n.ID = ""
	for i := range n.Children {
		stripIDs(&n.Children[i])
	}
}

// MatchesFile compares snap against a YAML golden file. With
// IMMEDIATE_UPDATE_SNAPSHOTS=1 the file is rewritten instead.
func MatchesFile(t TestingT, snap engine.Snapshot, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := UpdateFile(snap, path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}
	var want engine.Snapshot
	if err := yaml.Unmarshal(data, &want); err != nil {
		t.Fatalf("failed to parse snapshot %s: %v", path, err)
		return
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("snapshot mismatch: %s (-want +got):\n%s\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes snap to path, creating directories as needed.
func UpdateFile(snap engine.Snapshot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
