package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	MySQLImage    = "mysql:8.4"
	MySQLUser     = "msi"
	MySQLPassword = "msi-test-password"
	MySQLDatabase = "msi_test"
)

type MySQLContainer struct {
	*tcmysql.MySQLContainer
	DSN string
}

// StartMySQL runs a throwaway MySQL server and returns it together with a
// ready-to-use go-sql-driver DSN.
func StartMySQL(ctx context.Context) (*MySQLContainer, error) {
	ctr, err := tcmysql.Run(ctx,
		MySQLImage,
		tcmysql.WithUsername(MySQLUser),
		tcmysql.WithPassword(MySQLPassword),
		tcmysql.WithDatabase(MySQLDatabase),
		testcontainers.WithWaitStrategy(
			// mysqld logs "ready for connections" once for the bootstrap
			// server and once for the real one.
			wait.ForLog("ready for connections").
				WithOccurrence(2).
				WithStartupTimeout(120*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start mysql: %w", err)
	}

	dsn, err := ctr.ConnectionString(ctx)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &MySQLContainer{MySQLContainer: ctr, DSN: dsn}, nil
}
