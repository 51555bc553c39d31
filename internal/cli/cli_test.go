package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootPrintsHelp(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	for _, sub := range []string{"serve", "backup", "restore", "watch"} {
		require.Contains(t, out, sub)
	}
}

func TestRestoreRequiresFile(t *testing.T) {
	_, err := run(t, "restore")
	require.Error(t, err)
}

func TestBackupThenRestore(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("BACKUP_DIR", filepath.Join(dir, "backups"))

	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	recipes := `[{"id":1,"name":"Борщ","author":"Бабушка","ingredients":"свёкла","instructions":"варить","date":"","createdAt":""}]`
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "recipes.json"), []byte(recipes), 0o644))

	out, err := run(t, "backup")
	require.NoError(t, err)
	snapshot := strings.TrimSpace(out)
	require.FileExists(t, snapshot)

	out, err = run(t, "backup", "--list")
	require.NoError(t, err)
	require.Contains(t, out, filepath.Base(snapshot))

	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "recipes.json"), []byte("[]"), 0o644))

	out, err = run(t, "restore", snapshot)
	require.NoError(t, err)
	require.Contains(t, out, "restored 1 recipes and 0 wishes")

	b, err := os.ReadFile(filepath.Join(dataDir, "recipes.json"))
	require.NoError(t, err)
	require.Contains(t, string(b), "Борщ")
}
