package cli

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/robDaglio/msi/internal/config"
	"github.com/robDaglio/msi/internal/db"
	"github.com/robDaglio/msi/pkg/msi"
)

// connectionFlags holds the common connection-related flag values.
type connectionFlags struct {
	dsn            string
	host           string
	port           int
	username       string
	database       string
	tls            string
	instance       string
	promptPassword bool
	azureTenantID  string
	azureClientID  string
	aws            bool
	awsRegion      string
	googleInstance string
}

// registerConnectionFlags registers the shared connection flag set on cmd.
func registerConnectionFlags(cmd *cobra.Command, flags *connectionFlags) {
	// DSN flag (mutually exclusive with granular flags)
	cmd.Flags().StringVar(&flags.dsn, "dsn", "",
		"MySQL DSN in go-sql-driver format.\n"+
			"Mutually exclusive with granular flags (--host, --port, --username).\n"+
			"Alternative: Use MSI_DSN environment variable.\n"+
			"Example: user:pass@tcp(localhost:3306)/mydb")

	// Granular connection flags (mysql client conventions). The -h
	// shorthand is free because the root command registers the help flag
	// without one.
	cmd.Flags().StringVarP(&flags.host, "host", "h", "",
		"MySQL server host (default: localhost, or $MYSQL_HOST)")
	cmd.Flags().IntVarP(&flags.port, "port", "P", 0,
		"MySQL server port (default: 3306, or $MYSQL_TCP_PORT)")
	cmd.Flags().StringVarP(&flags.username, "username", "u", "",
		"MySQL user (default: $MYSQL_USER or current OS user)")
	cmd.Flags().StringVarP(&flags.database, "database", "D", "",
		"Target database name (optional if embedded in the DSN, or $MYSQL_DATABASE)")
	cmd.Flags().StringVar(&flags.tls, "tls", "",
		"TLS mode: false|true|skip-verify|preferred")
	cmd.Flags().BoolVar(&flags.promptPassword, "password-prompt", false,
		"Prompt for the password on stdin instead of reading $MYSQL_PWD")
	cmd.Flags().StringVar(&flags.instance, "instance", "",
		"Informational instance label carried through log lines")

	// Azure Entra ID flags
	cmd.Flags().StringVar(&flags.azureTenantID, "azure-tenant-id", "",
		"Azure AD tenant/directory ID (overrides $AZURE_TENANT_ID)")
	cmd.Flags().StringVar(&flags.azureClientID, "azure-client-id", "",
		"Azure AD application/client ID (overrides $AZURE_CLIENT_ID)")

	// AWS RDS IAM flags
	cmd.Flags().BoolVar(&flags.aws, "aws-iam", false,
		"Authenticate with an AWS RDS IAM token instead of a password")
	cmd.Flags().StringVar(&flags.awsRegion, "aws-region", "",
		"AWS region of the RDS instance (overrides $AWS_REGION)")

	// Google Cloud SQL flags
	cmd.Flags().StringVar(&flags.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance)")
}

// resolveConnectionFromFlags resolves the full connection configuration from
// flags, environment variables, and msi.yaml.
func resolveConnectionFromFlags(flags connectionFlags, projectCfg *config.ProjectConfig, verbose bool) (*msi.ConnectionConfig, error) {
	granularFlags := &db.GranularConnFlags{
		Host:     flags.host,
		Port:     flags.port,
		Username: flags.username,
		Database: flags.database,
		TLS:      flags.tls,
	}

	azureFlags := &db.AzureFlags{
		TenantID: flags.azureTenantID,
		ClientID: flags.azureClientID,
	}

	awsFlags := &db.AWSFlags{
		Enabled: flags.aws,
		Region:  flags.awsRegion,
	}

	googleFlags := &db.GoogleFlags{
		Instance: flags.googleInstance,
	}

	envVars := db.LoadFromEnvironment()

	connConfig, err := db.ResolveConnectionParams(
		flags.dsn,
		granularFlags,
		azureFlags,
		awsFlags,
		googleFlags,
		envVars,
		projectCfg,
	)
	if err != nil {
		return nil, err
	}

	connConfig.Instance = flags.instance

	if flags.promptPassword {
		password, err := readPassword(connConfig.Username)
		if err != nil {
			return nil, err
		}
		connConfig.Password = password
	}

	if verbose {
		logConnectionVerbose(connConfig)
	}

	return connConfig, nil
}

// readPassword prompts on stderr and reads the password without echo.
func readPassword(username string) (string, error) {
	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

// resolveEffectiveTimeout returns the effective timeout, preferring msi.yaml
// if the flag wasn't set.
func resolveEffectiveTimeout(cmd *cobra.Command, projectCfg *config.ProjectConfig, flagTimeout time.Duration) (time.Duration, error) {
	if projectCfg != nil && projectCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		parsed, err := time.ParseDuration(projectCfg.Timeout)
		if err != nil {
			return 0, fmt.Errorf("invalid timeout in msi.yaml: %w", err)
		}
		return parsed, nil
	}
	return flagTimeout, nil
}

// loadProjectConfig loads godotenv and project configuration from the
// working directory. Returns nil config if msi.yaml does not exist.
func loadProjectConfig() (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load msi.yaml: %w", err)
	}
	return projectCfg, nil
}

// logConnectionVerbose logs connection details when verbose mode is enabled.
func logConnectionVerbose(connConfig *msi.ConnectionConfig) {
	fmt.Fprintf(os.Stderr, "[VERBOSE] Connection resolved:\n")
	fmt.Fprintf(os.Stderr, "  Host: %s\n", connConfig.Host)
	fmt.Fprintf(os.Stderr, "  Port: %d\n", connConfig.Port)
	fmt.Fprintf(os.Stderr, "  User: %s\n", connConfig.Username)
	fmt.Fprintf(os.Stderr, "  Database: %s\n", connConfig.Database)
	if connConfig.Instance != "" {
		fmt.Fprintf(os.Stderr, "  Instance: %s\n", connConfig.Instance)
	}
	if tls, ok := connConfig.Params["tls"]; ok {
		fmt.Fprintf(os.Stderr, "  TLS: %s\n", tls)
	}
	if connConfig.GoogleInstance != "" {
		fmt.Fprintf(os.Stderr, "  Cloud SQL Instance: %s\n", connConfig.GoogleInstance)
	}
	fmt.Fprintf(os.Stderr, "  Auth Method: %s\n", connConfig.AuthMethod)
}
