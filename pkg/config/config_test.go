package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWithLookuper(envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "demo", cfg.AlphaVantage.APIKey)
	require.Equal(t, "30min", cfg.Market.Interval)
	require.Equal(t, 20, cfg.Market.HistoryPoints)
	require.Equal(t, 30*time.Minute, cfg.Market.SyntheticSpacing)
	require.Equal(t, 30*time.Second, cfg.Market.PollInterval)
	require.Equal(t, []string{"*"}, cfg.Security.CORSOrigins)
	require.False(t, cfg.SMTPEnabled())
	require.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadWithLookuper(envconfig.MapLookuper(map[string]string{
		"SERVER_PORT":                       "9090",
		"ALPHA_VANTAGE_API_KEY":             "secret",
		"ALPHA_VANTAGE_REQUESTS_PER_MINUTE": "5",
		"MARKET_HISTORY_POINTS":             "12",
		"SMTP_HOST":                         "smtp.example.com",
		"SMTP_USERNAME":                     "relay",
		"MAIL_FROM":                         "site@example.com",
		"MAIL_TO":                           "desk@example.com",
	}))
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "secret", cfg.AlphaVantage.APIKey)
	require.Equal(t, 5, cfg.AlphaVantage.RequestsPerMinute)
	require.Equal(t, 12, cfg.Market.HistoryPoints)
	require.True(t, cfg.SMTPEnabled())
	require.Equal(t, 465, cfg.SMTP.Port)
	require.True(t, cfg.SMTP.ImplicitTLS)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad port":          {"SERVER_PORT": "70000"},
		"zero history":      {"MARKET_HISTORY_POINTS": "0"},
		"negative spacing":  {"MARKET_SYNTHETIC_SPACING": "-1m"},
		"smtp without addr": {"SMTP_HOST": "smtp.example.com"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWithLookuper(envconfig.MapLookuper(env))
			require.Error(t, err)
		})
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("BROWNBULL_TEST_A=from-file\nBROWNBULL_TEST_B=from-file\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("BROWNBULL_TEST_A", "from-env")
	// Registers cleanup for the variable the loader is about to set
	t.Setenv("BROWNBULL_TEST_B", "")
	require.NoError(t, os.Unsetenv("BROWNBULL_TEST_B"))

	path, err := LoadDotEnv()
	require.NoError(t, err)
	require.Equal(t, ".env", path)
	require.Equal(t, "from-env", os.Getenv("BROWNBULL_TEST_A"))
	require.Equal(t, "from-file", os.Getenv("BROWNBULL_TEST_B"))
}
