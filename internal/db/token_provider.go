package db

import (
	"context"
	"time"
)

// TokenProvider abstracts cloud token acquisition for database
// authentication. Implementations exist for AWS RDS IAM and Azure Entra ID;
// the interface also keeps token-based drivers testable with mock providers.
type TokenProvider interface {
	// GetToken acquires a short-lived token used as the MySQL password.
	// Returns the token string and its expiry time.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String returns a human-readable description for logging.
	// Must NOT include secrets.
	String() string
}

// AzureMySQLScope is the OAuth scope for Azure Database for MySQL.
// Azure AD issues tokens against this resource identifier for MySQL access.
const AzureMySQLScope = "https://ossrdbms-aad.database.windows.net/.default"
