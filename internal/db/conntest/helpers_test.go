//go:build conntest

package conntest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/robDaglio/msi/internal/db"
	"github.com/robDaglio/msi/internal/testinfra"
	"github.com/robDaglio/msi/pkg/msi"
)

var container *testinfra.MySQLContainer

func TestMain(m *testing.M) {
	ctx := context.Background()

	ctr, err := testinfra.StartMySQL(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start mysql container: %v\n", err)
		os.Exit(1)
	}
	container = ctr

	code := m.Run()

	container.Terminate(ctx) //nolint:errcheck
	os.Exit(code)
}

// containerConfig resolves the container DSN into a ConnectionConfig.
func containerConfig(t *testing.T) *msi.ConnectionConfig {
	t.Helper()

	cfg, err := db.ResolveConnectionParams(container.DSN, nil, nil, nil, nil, &db.EnvVars{}, nil)
	if err != nil {
		t.Fatalf("resolve container DSN: %v", err)
	}
	return cfg
}
