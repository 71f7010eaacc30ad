package msi

import (
	"errors"
	"fmt"
	"time"
)

// ConnectionConfig identifies one target database and how to authenticate
// against it.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string

	// Instance is an optional informational label carried through log lines.
	// It plays no part in connection logic.
	Instance string

	// AuthMethod indicates the authentication mechanism to use.
	AuthMethod AuthMethod

	// ConnectTimeout bounds a single dial attempt. Zero means the driver
	// default.
	ConnectTimeout time.Duration

	// Params are additional DSN parameters passed through to the driver.
	Params map[string]string

	// Azure Entra ID parameters (used when AuthMethod is AuthMethodAzureEntraID).
	// If all three are provided, Service Principal authentication is used;
	// otherwise the DefaultAzureCredential chain applies.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is required for AuthMethodAWSIAM.
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name
	// (project:region:instance), required for AuthMethodGoogleIAM.
	GoogleInstance string
}

// Validate checks that the config has all required fields and valid values.
// It returns a multi-error if several validations fail.
func (c *ConnectionConfig) Validate() error {
	var errs []error

	if c.Host == "" && c.GoogleInstance == "" {
		errs = append(errs, fmt.Errorf("host is required: %w", ErrInvalidConfig))
	}

	if c.Database == "" {
		errs = append(errs, fmt.Errorf("database name is required: %w", ErrInvalidConfig))
	}

	if c.Username == "" {
		errs = append(errs, fmt.Errorf("username is required: %w", ErrInvalidConfig))
	}

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range: %w", c.Port, ErrInvalidConfig))
	}

	if c.ConnectTimeout < 0 {
		errs = append(errs, fmt.Errorf("connect timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if !c.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("auth method %v: %w", c.AuthMethod, ErrInvalidConfig))
	}

	switch c.AuthMethod {
	case AuthMethodAWSIAM:
		if c.AWSRegion == "" {
			errs = append(errs, fmt.Errorf("AWS IAM auth requires a region: %w", ErrInvalidConfig))
		}
	case AuthMethodGoogleIAM:
		if c.GoogleInstance == "" {
			errs = append(errs, fmt.Errorf("Google IAM auth requires an instance connection name: %w", ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// Addr returns the host:port endpoint, applying the default port when unset.
func (c *ConnectionConfig) Addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("%s:%d", c.Host, port)
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard    AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                        // AWS RDS IAM Database Authentication
	AuthMethodGoogleIAM                     // Google Cloud SQL IAM
	AuthMethodAzureEntraID                  // Azure Active Directory (Entra ID)
)

// String returns a human-readable representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod maps a CLI/config token to an AuthMethod.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch s {
	case "", "standard":
		return AuthMethodStandard, nil
	case "aws-iam":
		return AuthMethodAWSIAM, nil
	case "google":
		return AuthMethodGoogleIAM, nil
	case "azure":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("unknown auth method %q: %w", s, ErrUnsupportedAuthMethod)
	}
}
