package db

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/robDaglio/msi/internal/config"
	"github.com/robDaglio/msi/pkg/msi"
)

// GranularConnFlags represents connection parameters from CLI flags.
// These follow MySQL client flag conventions (-h, -P, -u, -D).
//
// Note: Password is NOT included as a CLI flag for security reasons.
// Use one of these methods instead:
//  1. $MYSQL_PWD environment variable
//  2. Interactive prompt (--password-prompt)
//  3. DSN with embedded password
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	TLS      string
}

// IsEmpty returns true if no connection-related granular flags were provided.
// The database flag is excluded because it can override the database embedded
// in a DSN.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.TLS == ""
}

// AzureFlags represents Azure Entra ID CLI flags.
// These override the corresponding AZURE_* environment variables.
// Note: Client secret is NOT included as a CLI flag for security reasons.
// Use AZURE_CLIENT_SECRET environment variable instead.
type AzureFlags struct {
	TenantID string // Overrides AZURE_TENANT_ID
	ClientID string // Overrides AZURE_CLIENT_ID
}

// IsEmpty returns true if no Azure flags were provided.
func (a *AzureFlags) IsEmpty() bool {
	return a == nil || (a.TenantID == "" && a.ClientID == "")
}

// AWSFlags represents AWS RDS IAM authentication CLI flags.
type AWSFlags struct {
	Enabled bool
	Region  string // Overrides AWS_REGION
}

// GoogleFlags represents Google Cloud SQL CLI flags.
type GoogleFlags struct {
	Instance string // project:region:instance
}

// EnvVars represents MySQL client and cloud provider environment variables.
type EnvVars struct {
	MYSQL_HOST     string // MySQL server host
	MYSQL_TCP_PORT string // MySQL server TCP port
	MYSQL_USER     string // MySQL username (msi-specific, mysql CLI has no equivalent)
	MYSQL_PWD      string // MySQL password (discouraged, prefer the prompt)
	MYSQL_DATABASE string // Default database name
	MSI_DSN        string // Full go-sql-driver DSN

	// Azure Entra ID environment variables (Azure SDK standard names)
	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string

	// AWS environment variables (AWS SDK standard names)
	AWS_REGION string
}

// LoadFromEnvironment loads MySQL and cloud provider environment variables.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		MYSQL_HOST:          os.Getenv("MYSQL_HOST"),
		MYSQL_TCP_PORT:      os.Getenv("MYSQL_TCP_PORT"),
		MYSQL_USER:          os.Getenv("MYSQL_USER"),
		MYSQL_PWD:           os.Getenv("MYSQL_PWD"),
		MYSQL_DATABASE:      os.Getenv("MYSQL_DATABASE"),
		MSI_DSN:             os.Getenv("MSI_DSN"),
		AZURE_TENANT_ID:     os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:     os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET: os.Getenv("AZURE_CLIENT_SECRET"),
		AWS_REGION:          os.Getenv("AWS_REGION"),
	}
}

// HasAzureCredentials returns true if Azure Entra ID environment variables are set.
func (e *EnvVars) HasAzureCredentials() bool {
	return e.AZURE_TENANT_ID != "" || e.AZURE_CLIENT_ID != ""
}

// ResolveConnectionParams resolves connection parameters with the precedence:
//
//  1. DSN flag (--dsn) - if provided, parse and use directly
//  2. Granular flags (-h, -P, -u, -D) - if any provided, build config from flags
//  3. MSI_DSN environment variable - fallback if no granular params
//  4. Environment variables (MYSQL_HOST, MYSQL_TCP_PORT, ...) - fallback
//  5. msi.yaml project configuration
//  6. Defaults (localhost:3306)
//
// Cloud authentication:
// Azure flags or AZURE_* environment variables switch AuthMethod to
// AzureEntraID. AWS flags do the same for RDS IAM, Google flags for
// Cloud SQL IAM. CLI flags take precedence over environment variables.
//
// Returns an error if BOTH --dsn AND granular flags are provided; the
// ambiguity would hide which source wins.
func ResolveConnectionParams(
	dsnFlag string,
	granularFlags *GranularConnFlags,
	azureFlags *AzureFlags,
	awsFlags *AWSFlags,
	googleFlags *GoogleFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*msi.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if azureFlags == nil {
		azureFlags = &AzureFlags{}
	}
	if awsFlags == nil {
		awsFlags = &AWSFlags{}
	}
	if googleFlags == nil {
		googleFlags = &GoogleFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}

	if dsnFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --dsn and granular flags (-h, -P, -u)\n" +
				"Choose one approach:\n" +
				"  1. DSN: --dsn \"user:pass@tcp(localhost:3306)/mydb\"\n" +
				"  2. Granular flags: -h localhost -P 3306 -u myuser -D mydb\n" +
				"  3. Environment variables: export MYSQL_HOST=localhost MYSQL_USER=myuser",
		)
	}

	var cfg *msi.ConnectionConfig
	var err error

	switch {
	case dsnFlag != "":
		cfg, err = resolveFromDSN(dsnFlag, envVars)
	case granularFlags.IsEmpty() && envVars.MSI_DSN != "":
		cfg, err = resolveFromDSN(envVars.MSI_DSN, envVars)
	default:
		cfg, err = resolveFromGranularParams(granularFlags, envVars, projectConfig)
	}
	if err != nil {
		return nil, err
	}

	if err := applyCloudAuth(cfg, azureFlags, awsFlags, googleFlags, envVars, projectConfig); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyCloudAuth switches the config to a cloud auth method when the
// corresponding flags, environment variables, or msi.yaml entries are present.
// CLI flags take precedence over environment variables, which take precedence
// over msi.yaml.
func applyCloudAuth(
	cfg *msi.ConnectionConfig,
	azure *AzureFlags,
	aws *AWSFlags,
	google *GoogleFlags,
	env *EnvVars,
	projectConfig *config.ProjectConfig,
) error {
	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	yamlAuth, err := msi.ParseAuthMethod(pc.AuthMethod)
	if err != nil {
		return fmt.Errorf("invalid auth_method in msi.yaml: %w", err)
	}

	if google.Instance != "" || pc.GoogleInstance != "" || yamlAuth == msi.AuthMethodGoogleIAM {
		cfg.AuthMethod = msi.AuthMethodGoogleIAM
		cfg.GoogleInstance = google.Instance
		if cfg.GoogleInstance == "" {
			cfg.GoogleInstance = pc.GoogleInstance
		}
		return nil
	}

	if aws.Enabled || yamlAuth == msi.AuthMethodAWSIAM {
		cfg.AuthMethod = msi.AuthMethodAWSIAM
		cfg.AWSRegion = aws.Region
		if cfg.AWSRegion == "" {
			cfg.AWSRegion = env.AWS_REGION
		}
		if cfg.AWSRegion == "" {
			cfg.AWSRegion = pc.AWSRegion
		}
		return nil
	}

	tenantID := azure.TenantID
	if tenantID == "" {
		tenantID = env.AZURE_TENANT_ID
	}
	if tenantID == "" {
		tenantID = pc.AzureTenantID
	}

	clientID := azure.ClientID
	if clientID == "" {
		clientID = env.AZURE_CLIENT_ID
	}
	if clientID == "" {
		clientID = pc.AzureClientID
	}

	// Client secret only comes from the environment (no flag for security)
	if tenantID != "" || clientID != "" || yamlAuth == msi.AuthMethodAzureEntraID {
		cfg.AuthMethod = msi.AuthMethodAzureEntraID
		cfg.AzureTenantID = tenantID
		cfg.AzureClientID = clientID
		cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
	}
	return nil
}

// resolveFromDSN parses a go-sql-driver DSN into a ConnectionConfig.
// Environment variables are applied as fallbacks for the password only;
// everything else is taken from the DSN verbatim.
func resolveFromDSN(dsn string, envVars *EnvVars) (*msi.ConnectionConfig, error) {
	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	host := parsed.Addr
	port := msi.DefaultPort
	if h, p, splitErr := net.SplitHostPort(parsed.Addr); splitErr == nil {
		host = h
		if n, convErr := strconv.Atoi(p); convErr == nil {
			port = n
		}
	}

	cfg := &msi.ConnectionConfig{
		Host:       host,
		Port:       port,
		Username:   parsed.User,
		Password:   parsed.Passwd,
		Database:   parsed.DBName,
		AuthMethod: msi.AuthMethodStandard,
		Params:     make(map[string]string),
	}
	for k, v := range parsed.Params {
		cfg.Params[k] = v
	}
	if parsed.TLSConfig != "" {
		cfg.Params["tls"] = parsed.TLSConfig
	}

	if cfg.Password == "" && envVars != nil {
		cfg.Password = envVars.MYSQL_PWD
	}

	return cfg, nil
}

// resolveFromGranularParams builds a ConnectionConfig from granular flags,
// environment variables, and msi.yaml, in that order of precedence.
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*msi.ConnectionConfig, error) {
	cfg := &msi.ConnectionConfig{
		AuthMethod: msi.AuthMethodStandard,
		Params:     make(map[string]string),
	}

	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	// Host: flag > MYSQL_HOST > msi.yaml > default
	cfg.Host = flags.Host
	if cfg.Host == "" {
		cfg.Host = envVars.MYSQL_HOST
	}
	if cfg.Host == "" {
		cfg.Host = pc.Host
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}

	// Port: flag > MYSQL_TCP_PORT > msi.yaml > default
	if flags.Port != 0 {
		cfg.Port = flags.Port
	} else if envVars.MYSQL_TCP_PORT != "" {
		port, err := strconv.Atoi(envVars.MYSQL_TCP_PORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $MYSQL_TCP_PORT value '%s': must be an integer", envVars.MYSQL_TCP_PORT)
		}
		cfg.Port = port
	} else if pc.Port != 0 {
		cfg.Port = pc.Port
	} else {
		cfg.Port = msi.DefaultPort
	}

	// Username: flag > MYSQL_USER > msi.yaml > current OS user
	cfg.Username = flags.Username
	if cfg.Username == "" {
		cfg.Username = envVars.MYSQL_USER
	}
	if cfg.Username == "" {
		cfg.Username = pc.Username
	}
	if cfg.Username == "" {
		if currentUser := os.Getenv("USER"); currentUser != "" {
			cfg.Username = currentUser
		} else if currentUser := os.Getenv("USERNAME"); currentUser != "" {
			cfg.Username = currentUser
		}
	}

	cfg.Password = envVars.MYSQL_PWD

	// Database: flag > MYSQL_DATABASE > msi.yaml
	cfg.Database = flags.Database
	if cfg.Database == "" {
		cfg.Database = envVars.MYSQL_DATABASE
	}
	if cfg.Database == "" {
		cfg.Database = pc.Database
	}

	// TLS: flag > msi.yaml
	tls := flags.TLS
	if tls == "" {
		tls = pc.TLS
	}
	if tls != "" {
		cfg.Params["tls"] = tls
	}

	return cfg, nil
}
