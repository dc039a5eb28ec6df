package process_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/aretw0/baristabot/pkg/adapters/process"
	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("kitchen scripts need a POSIX shell")
	}
}

func TestFulfillment_SubmitOrder(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "payload.json")
	meta := filepath.Join(dir, "meta.txt")

	f := process.New(process.KitchenConfig{
		Command: "sh",
		Args:    []string{"-c", `cat > "$OUT"; printf '%s|%s' "$BARISTABOT_SESSION_ID" "$BARISTABOT_ORDER_LINES" > "$META"`},
		Environment: map[string]string{
			"OUT":  out,
			"META": meta,
		},
	})

	order := domain.Order{
		{Drink: "Latte", Modifiers: []string{"Oat"}},
		{Drink: "Espresso"},
	}
	require.NoError(t, f.SubmitOrder(context.Background(), "s1", order))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var payload process.Payload
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "s1", payload.SessionID)
	assert.True(t, order.Equal(payload.Order))

	m, err := os.ReadFile(meta)
	require.NoError(t, err)
	assert.Equal(t, "s1|2", string(m))
}

func TestFulfillment_CommandFails(t *testing.T) {
	requireShell(t)
	f := process.New(process.KitchenConfig{
		Command: "sh",
		Args:    []string{"-c", "echo 'oven on fire' >&2; exit 3"},
	})

	err := f.SubmitOrder(context.Background(), "s1", domain.Order{{Drink: "Mocha"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oven on fire")
}

func TestFulfillment_Timeout(t *testing.T) {
	requireShell(t)
	f := process.New(process.KitchenConfig{
		Command: "sleep",
		Args:    []string{"5"},
		Timeout: 50 * time.Millisecond,
	})

	err := f.SubmitOrder(context.Background(), "s1", domain.Order{{Drink: "Mocha"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(dir, "kitchen.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
kitchen:
  command: ./notify.sh
  args: ["--station", "bar"]
  env:
    PRINTER: front
  timeout: 2s
`), 0o644))

		cfg, err := process.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "./notify.sh", cfg.Command)
		assert.Equal(t, []string{"--station", "bar"}, cfg.Args)
		assert.Equal(t, "front", cfg.Environment["PRINTER"])
		assert.Equal(t, 2*time.Second, cfg.Timeout)
	})

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(dir, "kitchen.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"kitchen": {"command": "lp", "args": ["-d", "bar"]}}`), 0o644))

		cfg, err := process.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "lp", cfg.Command)
		assert.Equal(t, []string{"-d", "bar"}, cfg.Args)
	})

	t.Run("Missing Command", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("kitchen: {}\n"), 0o644))

		_, err := process.LoadConfig(path)
		assert.ErrorContains(t, err, "command is required")
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := process.LoadConfig(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}
