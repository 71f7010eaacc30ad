package db

import (
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/robDaglio/msi/pkg/msi"
)

// buildMySQLConfig translates a ConnectionConfig into a go-sql-driver
// configuration for one TCP session. password is passed separately so
// token-based drivers can substitute a freshly acquired token.
func buildMySQLConfig(cfg *msi.ConnectionConfig, password string) *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = password
	mc.Net = "tcp"
	mc.Addr = cfg.Addr()
	mc.DBName = cfg.Database
	mc.ParseTime = true

	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = msi.DefaultConnectTimeout
	}
	mc.Timeout = timeout

	for k, v := range cfg.Params {
		// The driver treats leftover Params as session system variables
		// (SET k=v after handshake); tls selects the transport and must go
		// through TLSConfig instead.
		if k == "tls" {
			mc.TLSConfig = v
			continue
		}
		if mc.Params == nil {
			mc.Params = make(map[string]string, len(cfg.Params))
		}
		mc.Params[k] = v
	}

	return mc
}

// BuildDSN renders the driver DSN for a config. Used by the CLI for
// verbose output and by tests; drivers connect through mysql.NewConnector
// with the structured config instead.
func BuildDSN(cfg *msi.ConnectionConfig) string {
	return buildMySQLConfig(cfg, cfg.Password).FormatDSN()
}

// SafeDSN renders the DSN with the password masked, for log lines.
func SafeDSN(cfg *msi.ConnectionConfig) string {
	mc := buildMySQLConfig(cfg, strings.Repeat("x", len(cfg.Password)))
	return mc.FormatDSN()
}
