package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/robDaglio/msi/pkg/msi"
)

// TokenDriver implements msi.Driver for cloud providers that authenticate
// via short-lived tokens (AWS RDS IAM, Azure Entra ID). The token is
// acquired fresh on every open attempt and used as the MySQL password.
type TokenDriver struct {
	tokenProvider TokenProvider
	providerName  string
}

// NewTokenDriver creates a driver that uses a TokenProvider for authentication.
// providerName is used in warning messages (e.g., "AWS IAM", "Azure").
func NewTokenDriver(tokenProvider TokenProvider, providerName string) *TokenDriver {
	return &TokenDriver{
		tokenProvider: tokenProvider,
		providerName:  providerName,
	}
}

// Open acquires a token and dials a single verified session with it.
func (d *TokenDriver) Open(ctx context.Context, cfg *msi.ConnectionConfig) (msi.Conn, error) {
	token, expiresOn, err := d.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s token: %w", d.providerName, err)
	}

	if remaining := time.Until(expiresOn); remaining < 5*time.Minute {
		fmt.Fprintf(os.Stderr, "Warning: %s token expires in %v\n", d.providerName, remaining.Round(time.Second))
	}

	mc := buildMySQLConfig(cfg, token)

	// Token auth relies on the cleartext plugin over an encrypted channel.
	// buildMySQLConfig already honors an explicit tls param; require server
	// verification otherwise.
	mc.AllowCleartextPasswords = true
	if mc.TLSConfig == "" {
		mc.TLSConfig = "true"
	}

	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, fmt.Errorf("failed to build connector: %w", err)
	}

	return openSession(ctx, sql.OpenDB(connector), cfg)
}
