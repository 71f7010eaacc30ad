package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robDaglio/msi/internal/db"
	"github.com/robDaglio/msi/internal/db/manager"
	"github.com/robDaglio/msi/internal/logging"
	"github.com/robDaglio/msi/internal/ui"
	"github.com/robDaglio/msi/pkg/msi"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Verify database connectivity",
	Long: `Ping opens a managed session, asks the server for its version, and
reports success or failure. Connect attempts follow the same bounded retry
budget as query.

Examples:
  msi ping -h dbhost -u svc -D appdb
  msi ping --dsn "svc:secret@tcp(dbhost:3306)/appdb"`,
	Args: cobra.NoArgs,
	RunE: runPing,
}

var (
	pingConnFlags connectionFlags
	pingTimeout   time.Duration
)

func init() {
	rootCmd.AddCommand(pingCmd)

	registerConnectionFlags(pingCmd, &pingConnFlags)
	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", msi.DefaultConnectTimeout,
		"Timeout for the whole command, connect attempts included")
}

func runPing(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	projectCfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	connConfig, err := resolveConnectionFromFlags(pingConnFlags, projectCfg, verbose)
	if err != nil {
		return err
	}
	if err := connConfig.Validate(); err != nil {
		return err
	}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, pingTimeout)
	if err != nil {
		return err
	}
	connConfig.ConnectTimeout = timeout

	driver, err := db.NewDriver(connConfig)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)

	ctx, cancel := context.WithTimeout(cmdContext(cmd), timeout)
	defer cancel()

	return manager.With(ctx, connConfig, driver, logger, func(m *manager.Manager) error {
		rows, err := m.Query(ctx, "SELECT VERSION()")
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.RenderError(fmt.Sprintf("connection to %s failed", connConfig.Addr())))
			return err
		}

		version := "unknown"
		if len(rows) > 0 && len(rows[0]) > 0 {
			version = rows[0][0]
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderSuccess(fmt.Sprintf("connected to %s (server version %s)", connConfig.Addr(), version)))
		return nil
	})
}
