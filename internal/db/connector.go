// Package db adapts the go-sql-driver/mysql client to the msi.Driver
// collaborator contract and provides authentication-specific drivers.
package db

import (
	"fmt"

	"github.com/robDaglio/msi/pkg/msi"
)

// NewDriver is a factory that creates the appropriate msi.Driver based on
// the ConnectionConfig's AuthMethod.
func NewDriver(cfg *msi.ConnectionConfig) (msi.Driver, error) {
	switch cfg.AuthMethod {
	case msi.AuthMethodStandard:
		return NewStandardDriver(), nil
	case msi.AuthMethodAWSIAM:
		return newAWSDriver(cfg)
	case msi.AuthMethodGoogleIAM:
		return newGoogleDriver(cfg)
	case msi.AuthMethodAzureEntraID:
		return newAzureDriver(cfg)
	default:
		return nil, fmt.Errorf("auth method %v: %w", cfg.AuthMethod, msi.ErrUnsupportedAuthMethod)
	}
}

// newAWSDriver creates a token-based driver with the AWS IAM token provider.
func newAWSDriver(cfg *msi.ConnectionConfig) (msi.Driver, error) {
	tokenProvider, err := NewAWSIAMTokenProvider(cfg.Addr(), cfg.AWSRegion, cfg.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w", err)
	}

	return NewTokenDriver(tokenProvider, "AWS IAM"), nil
}

// newGoogleDriver creates a GoogleCloudSQLDriver for Cloud SQL IAM authentication.
func newGoogleDriver(cfg *msi.ConnectionConfig) (msi.Driver, error) {
	if cfg.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance)")
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires username (-U)")
	}

	return NewGoogleCloudSQLDriver(), nil
}

// newAzureDriver creates a token-based driver with the Azure Entra ID token
// provider. Explicit credentials (tenant, client, secret) select Service
// Principal auth; otherwise the DefaultAzureCredential chain applies.
func newAzureDriver(cfg *msi.ConnectionConfig) (msi.Driver, error) {
	var tokenProvider TokenProvider
	var err error

	if cfg.AzureTenantID != "" && cfg.AzureClientID != "" && cfg.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(
			cfg.AzureTenantID,
			cfg.AzureClientID,
			cfg.AzureClientSecret,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Service Principal provider: %w", err)
		}
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Default Credential provider: %w", err)
		}
	}

	return NewTokenDriver(tokenProvider, "Azure"), nil
}
