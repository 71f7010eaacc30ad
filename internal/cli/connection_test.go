package cli

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robDaglio/msi/internal/config"
	"github.com/robDaglio/msi/pkg/msi"
)

func TestResolveConnectionFromFlags_Granular(t *testing.T) {
	clearConnectionEnv(t)
	flags := connectionFlags{
		host:     "dbhost",
		port:     3307,
		username: "svc",
		database: "orders",
		tls:      "skip-verify",
	}

	cfg, err := resolveConnectionFromFlags(flags, nil, false)
	require.NoError(t, err)

	assert.Equal(t, "dbhost", cfg.Host)
	assert.Equal(t, 3307, cfg.Port)
	assert.Equal(t, "svc", cfg.Username)
	assert.Equal(t, "orders", cfg.Database)
	assert.Equal(t, "skip-verify", cfg.Params["tls"])
	assert.Equal(t, msi.AuthMethodStandard, cfg.AuthMethod)
}

func TestConnectionFlags_HostShorthand(t *testing.T) {
	// The root command registers --help without a shorthand, which keeps -h
	// free for the host flag even after cobra wires its default help flag.
	queryCmd.InitDefaultHelpFlag()

	f := queryCmd.Flags().ShorthandLookup("h")
	require.NotNil(t, f, "-h shorthand not registered")
	assert.Equal(t, "host", f.Name, "-h must select the server host, not help")
}

func TestResolveConnectionFromFlags_InstanceLabel(t *testing.T) {
	clearConnectionEnv(t)
	flags := connectionFlags{host: "dbhost", instance: "orders-primary"}

	cfg, err := resolveConnectionFromFlags(flags, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "orders-primary", cfg.Instance)
}

func TestResolveConnectionFromFlags_DSN(t *testing.T) {
	clearConnectionEnv(t)
	flags := connectionFlags{dsn: "svc:pw@tcp(dbhost:3306)/orders"}

	cfg, err := resolveConnectionFromFlags(flags, nil, false)
	require.NoError(t, err)

	assert.Equal(t, "dbhost", cfg.Host)
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, "orders", cfg.Database)
}

func TestResolveConnectionFromFlags_YAMLFallback(t *testing.T) {
	clearConnectionEnv(t)
	projectCfg := &config.ProjectConfig{
		Connection: config.ConnectionConfig{Host: "yamlhost", Port: 3308, Username: "yamluser", Database: "yamldb"},
	}

	cfg, err := resolveConnectionFromFlags(connectionFlags{}, projectCfg, false)
	require.NoError(t, err)

	assert.Equal(t, "yamlhost", cfg.Host)
	assert.Equal(t, 3308, cfg.Port)
	assert.Equal(t, "yamluser", cfg.Username)
	assert.Equal(t, "yamldb", cfg.Database)
}

func TestResolveConnectionFromFlags_CloudAuth(t *testing.T) {
	clearConnectionEnv(t)
	flags := connectionFlags{googleInstance: "proj:region:instance", username: "sa"}

	cfg, err := resolveConnectionFromFlags(flags, nil, false)
	require.NoError(t, err)

	assert.Equal(t, msi.AuthMethodGoogleIAM, cfg.AuthMethod)
	assert.Equal(t, "proj:region:instance", cfg.GoogleInstance)
}

func TestResolveEffectiveTimeout_FlagWins(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Duration("timeout", msi.DefaultConnectTimeout, "")
	require.NoError(t, cmd.Flags().Set("timeout", "5s"))

	projectCfg := &config.ProjectConfig{Timeout: "1m"}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
}

func TestResolveEffectiveTimeout_YAMLFallback(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Duration("timeout", msi.DefaultConnectTimeout, "")

	projectCfg := &config.ProjectConfig{Timeout: "1m"}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, msi.DefaultConnectTimeout)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, timeout)
}

func TestResolveEffectiveTimeout_InvalidYAML(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Duration("timeout", msi.DefaultConnectTimeout, "")

	projectCfg := &config.ProjectConfig{Timeout: "not-a-duration"}

	_, err := resolveEffectiveTimeout(cmd, projectCfg, msi.DefaultConnectTimeout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "msi.yaml")
}
