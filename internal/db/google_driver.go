package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"cloud.google.com/go/cloudsqlconn"
	cloudmysql "cloud.google.com/go/cloudsqlconn/mysql/mysql"

	"github.com/robDaglio/msi/pkg/msi"
)

// googleDriverName is the database/sql driver name the Cloud SQL dialer is
// registered under. Registration is process-global and happens at most once.
const googleDriverName = "cloudsql-mysql"

var (
	googleRegisterOnce sync.Once
	googleCleanup      func() error
	googleRegisterErr  error
)

// GoogleCloudSQLDriver implements msi.Driver for Google Cloud SQL using IAM
// database authentication via the Cloud SQL Go Connector. The connector
// handles authentication, TLS, and dialing.
//
// Implements io.Closer — call Close() after the last session is closed to
// release the dialer resources.
type GoogleCloudSQLDriver struct{}

// NewGoogleCloudSQLDriver creates a driver for Google Cloud SQL IAM
// authentication. The instance connection name (project:region:instance)
// comes from the ConnectionConfig at open time.
func NewGoogleCloudSQLDriver() *GoogleCloudSQLDriver {
	return &GoogleCloudSQLDriver{}
}

// Open dials the configured Cloud SQL instance and pins a single verified
// session.
func (d *GoogleCloudSQLDriver) Open(ctx context.Context, cfg *msi.ConnectionConfig) (msi.Conn, error) {
	googleRegisterOnce.Do(func() {
		googleCleanup, googleRegisterErr = cloudmysql.RegisterDriver(
			googleDriverName,
			cloudsqlconn.WithIAMAuthN(),
		)
	})
	if googleRegisterErr != nil {
		return nil, fmt.Errorf("failed to register Cloud SQL driver: %w", googleRegisterErr)
	}

	mc := buildMySQLConfig(cfg, "")
	mc.Net = googleDriverName
	mc.Addr = cfg.GoogleInstance
	mc.AllowCleartextPasswords = true

	pool, err := sql.Open(googleDriverName, mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open Cloud SQL pool: %w", err)
	}

	return openSession(ctx, pool, cfg)
}

// Close releases the Cloud SQL dialer resources.
// Must be called after every session returned by Open() is closed.
func (d *GoogleCloudSQLDriver) Close() error {
	if googleCleanup != nil {
		return googleCleanup()
	}
	return nil
}
