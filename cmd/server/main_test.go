package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/store"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, "expo-server version dev\n", out.String())
}

func TestExportCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "expo.db")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", dbPath)
	t.Setenv("EXPORT_TIMEZONE", "UTC")

	ctx := context.Background()
	st, err := store.NewSQLiteStore(ctx, dbPath)
	require.NoError(t, err)
	for _, name := range []string{"Asha Rao", "Ravi Kumar"} {
		_, err := st.InsertRegistration(ctx, models.RegistrationFields{
			FullName: name, Email: strings.ToLower(strings.Fields(name)[0]) + "@x.edu",
			PhoneNumber: "1", CollegeName: "ABC College", Department: "CSE",
			ProjectTitle: "Project", Category: "AI", Abstract: "a",
		})
		require.NoError(t, err)
	}
	require.NoError(t, st.Close())

	outPath := filepath.Join(t.TempDir(), "out.csv")
	cmd := rootCmd()
	cmd.SetArgs([]string{"export", "--out", outPath, "--query", "ravi"})
	require.NoError(t, cmd.ExecuteContext(ctx))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "2,Ravi Kumar,ravi@x.edu,"))
}

func TestNewLogger(t *testing.T) {
	log := newLogger("debug")
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, newLogger("warn").Enabled(context.Background(), slog.LevelInfo))
}
