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

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Execute a SQL statement",
	Long: `Query opens a managed session, executes one SQL statement, and renders
every result row with all column values normalized to strings.

Connect attempts are retried on transient errors within a fixed budget;
once the budget is exhausted the session is marked failed and the command
exits with code 11.

Password Authentication:
  For security, password is NOT accepted as a CLI flag. Use one of:
    1. $MYSQL_PWD environment variable
    2. Interactive prompt: --password-prompt
    3. DSN with embedded password: user:pass@tcp(host:3306)/db

Examples:
  # Granular flags
  msi query "SELECT id, name FROM users" -h dbhost -u svc -D appdb

  # DSN
  msi query "SELECT 1" --dsn "svc:secret@tcp(dbhost:3306)/appdb"

  # AWS RDS IAM authentication
  msi query "SELECT 1" -h mydb.abc.us-east-1.rds.amazonaws.com -u iam_user --aws-iam

  # Cloud SQL IAM authentication
  msi query "SELECT 1" --google-instance proj:region:instance -u sa-name`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

var (
	queryConnFlags connectionFlags
	queryTimeout   time.Duration
	queryPlain     bool
)

func init() {
	rootCmd.AddCommand(queryCmd)

	registerConnectionFlags(queryCmd, &queryConnFlags)
	queryCmd.Flags().DurationVar(&queryTimeout, "timeout", msi.DefaultConnectTimeout,
		"Timeout for the whole command, connect attempts included")
	queryCmd.Flags().BoolVar(&queryPlain, "plain", false,
		"Print tab-separated rows instead of a table")
}

func runQuery(cmd *cobra.Command, args []string) error {
	statement := args[0]
	verbose := getVerboseFlag(cmd)

	projectCfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	connConfig, err := resolveConnectionFromFlags(queryConnFlags, projectCfg, verbose)
	if err != nil {
		return err
	}
	if err := connConfig.Validate(); err != nil {
		return err
	}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, queryTimeout)
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
		rows, err := m.Query(ctx, statement)
		if err != nil {
			return err
		}
		printRows(cmd, rows)
		return nil
	})
}

func printRows(cmd *cobra.Command, rows [][]string) {
	if queryPlain {
		for _, row := range rows {
			for i, cell := range row {
				if i > 0 {
					fmt.Fprint(cmd.OutOrStdout(), "\t")
				}
				fmt.Fprint(cmd.OutOrStdout(), cell)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return
	}

	if table := ui.RenderTable(nil, rows); table != "" {
		fmt.Fprintln(cmd.OutOrStdout(), table)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), ui.RenderRowCount(len(rows)))
}
