package db

import (
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"

	"github.com/robDaglio/msi/pkg/msi"
)

func TestBuildDSN(t *testing.T) {
	cfg := &msi.ConnectionConfig{
		Host:     "db.example.com",
		Port:     3307,
		Database: "orders",
		Username: "svc",
		Password: "s3cret",
	}

	dsn := BuildDSN(cfg)

	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("BuildDSN produced unparseable DSN %q: %v", dsn, err)
	}

	if parsed.Addr != "db.example.com:3307" {
		t.Errorf("Addr = %q, want db.example.com:3307", parsed.Addr)
	}
	if parsed.User != "svc" || parsed.Passwd != "s3cret" {
		t.Errorf("credentials = %q/%q", parsed.User, parsed.Passwd)
	}
	if parsed.DBName != "orders" {
		t.Errorf("DBName = %q, want orders", parsed.DBName)
	}
	if !parsed.ParseTime {
		t.Error("ParseTime not enabled")
	}
	if parsed.Timeout != msi.DefaultConnectTimeout {
		t.Errorf("Timeout = %v, want default %v", parsed.Timeout, msi.DefaultConnectTimeout)
	}
}

func TestBuildDSN_DefaultPort(t *testing.T) {
	cfg := &msi.ConnectionConfig{
		Host:     "localhost",
		Database: "d",
		Username: "u",
	}

	parsed, err := mysql.ParseDSN(BuildDSN(cfg))
	if err != nil {
		t.Fatalf("ParseDSN: %v", err)
	}
	if parsed.Addr != "localhost:3306" {
		t.Errorf("Addr = %q, want default port 3306", parsed.Addr)
	}
}

func TestBuildDSN_ExtraParams(t *testing.T) {
	cfg := &msi.ConnectionConfig{
		Host:     "localhost",
		Database: "d",
		Username: "u",
		Params:   map[string]string{"charset": "utf8mb4"},
	}

	dsn := BuildDSN(cfg)
	if !strings.Contains(dsn, "charset=utf8mb4") {
		t.Errorf("DSN %q missing passthrough param", dsn)
	}
}

func TestBuildMySQLConfig_TLSParamSelectsTransport(t *testing.T) {
	cfg := &msi.ConnectionConfig{
		Host:     "localhost",
		Database: "d",
		Username: "u",
		Params:   map[string]string{"tls": "skip-verify", "charset": "utf8mb4"},
	}

	mc := buildMySQLConfig(cfg, cfg.Password)

	if mc.TLSConfig != "skip-verify" {
		t.Errorf("TLSConfig = %q, want skip-verify", mc.TLSConfig)
	}
	// A leftover tls key in Params would be sent as SET tls=... after the
	// handshake and fail as an unknown system variable.
	if _, ok := mc.Params["tls"]; ok {
		t.Error("tls leaked into Params")
	}
	if mc.Params["charset"] != "utf8mb4" {
		t.Errorf("Params = %v, want charset passthrough intact", mc.Params)
	}

	parsed, err := mysql.ParseDSN(BuildDSN(cfg))
	if err != nil {
		t.Fatalf("ParseDSN: %v", err)
	}
	if parsed.TLSConfig != "skip-verify" {
		t.Errorf("round-tripped TLSConfig = %q, want skip-verify", parsed.TLSConfig)
	}
}

func TestSafeDSN_MasksPassword(t *testing.T) {
	cfg := &msi.ConnectionConfig{
		Host:     "localhost",
		Database: "d",
		Username: "u",
		Password: "hunter2",
	}

	safe := SafeDSN(cfg)
	if strings.Contains(safe, "hunter2") {
		t.Errorf("SafeDSN leaked the password: %q", safe)
	}
	if !strings.Contains(safe, strings.Repeat("x", len("hunter2"))) {
		t.Errorf("SafeDSN %q does not carry the mask", safe)
	}
}
