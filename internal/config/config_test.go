package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))
	t.Setenv(EnvPrefix+"CONFIG_PATH", "")
	return tmpDir
}

func TestLoadAndGet(t *testing.T) {
	isolate(t)
	Load()

	got := Get("missing", "default")
	require.Equal(t, "default", got)
}

func TestDefaults(t *testing.T) {
	tmpDir := isolate(t)
	Load()

	require.Equal(t, filepath.Join(tmpDir, "state", "toastbox"), Get("state_dir", ""))
	require.Equal(t, filepath.Join(tmpDir, "state", "toastbox", "history.db"), Get("history_path", ""))
	require.True(t, GetBool("history_enabled", false))
	require.Equal(t, 50, GetInt("toast_width", 0))
	require.Equal(t, domain.DefaultDurations(), Durations())
	require.Equal(t, filepath.Join(tmpDir, "config", "toastbox", "hooks"), Get("hooks_dir", ""))
	require.Equal(t, "warn", Get("hooks_failure_mode", ""))
	require.Equal(t, 30*time.Second, GetDuration("hooks_timeout", 0))
}

func TestConfigLoadingPrecedence(t *testing.T) {
	tmpDir := isolate(t)

	configFile := filepath.Join(tmpDir, "custom.toml")
	configContent := `
duration_info = "7s"
duration_success = 1500
toast_width = 60
history_enabled = false
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	t.Setenv(EnvPrefix+"CONFIG_PATH", configFile)
	t.Setenv(EnvPrefix+"TOAST_WIDTH", "72")

	Load()

	require.Equal(t, 72, GetInt("toast_width", 0), "environment should override config file")
	require.False(t, GetBool("history_enabled", true))

	durations := Durations()
	require.Equal(t, 7*time.Second, durations.For(domain.SeverityInfo))
	require.Equal(t, 1500*time.Millisecond, durations.For(domain.SeveritySuccess))
	require.Equal(t, 5*time.Second, durations.For(domain.SeverityError))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	isolate(t)
	t.Setenv(EnvPrefix+"DURATION_WARNING", "-2s")
	t.Setenv(EnvPrefix+"TOAST_WIDTH", "zero")
	t.Setenv(EnvPrefix+"LOGGING_LEVEL", "verbose")
	t.Setenv(EnvPrefix+"DEBUG", "maybe")

	Load()

	require.Equal(t, 4*time.Second, Durations().For(domain.SeverityWarning))
	require.Equal(t, 50, GetInt("toast_width", 0))
	require.Equal(t, "info", Get("logging_level", ""))
	require.Equal(t, "false", Get("debug", ""))
}

func TestZeroDurationMeansSticky(t *testing.T) {
	isolate(t)
	t.Setenv(EnvPrefix+"DURATION_ERROR", "0")

	Load()

	require.Equal(t, time.Duration(0), Durations().For(domain.SeverityError))
}

func TestDurationValidator(t *testing.T) {
	v := DurationValidator()
	tests := []struct {
		value string
		want  string
	}{
		{value: "", want: "5s"},
		{value: "2500", want: "2.5s"},
		{value: "3s", want: "3s"},
		{value: "0", want: "0s"},
		{value: "soon", want: "5s"},
		{value: "-1s", want: "5s"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := v("duration_error", tt.value, "5s")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRegisterValidatorPanicsOnDuplicate(t *testing.T) {
	require.Panics(t, func() {
		RegisterValidator("toast_width", PositiveIntValidator())
	})
}
