package msi_test

import (
	"errors"
	"testing"

	"github.com/robDaglio/msi/pkg/msi"
)

func TestConnectionConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    msi.ConnectionConfig
		wantError bool
		errorType error
	}{
		{
			name: "valid standard config",
			config: msi.ConnectionConfig{
				Host:     "db.example.com",
				Port:     3306,
				Database: "orders",
				Username: "svc",
				Password: "secret",
			},
			wantError: false,
		},
		{
			name: "default port is allowed to be zero",
			config: msi.ConnectionConfig{
				Host:     "db.example.com",
				Database: "orders",
				Username: "svc",
			},
			wantError: false,
		},
		{
			name: "missing host",
			config: msi.ConnectionConfig{
				Database: "orders",
				Username: "svc",
			},
			wantError: true,
			errorType: msi.ErrInvalidConfig,
		},
		{
			name: "missing database",
			config: msi.ConnectionConfig{
				Host:     "db.example.com",
				Username: "svc",
			},
			wantError: true,
			errorType: msi.ErrInvalidConfig,
		},
		{
			name: "missing username",
			config: msi.ConnectionConfig{
				Host:     "db.example.com",
				Database: "orders",
			},
			wantError: true,
			errorType: msi.ErrInvalidConfig,
		},
		{
			name: "port out of range",
			config: msi.ConnectionConfig{
				Host:     "db.example.com",
				Port:     70000,
				Database: "orders",
				Username: "svc",
			},
			wantError: true,
			errorType: msi.ErrInvalidConfig,
		},
		{
			name: "negative timeout",
			config: msi.ConnectionConfig{
				Host:           "db.example.com",
				Database:       "orders",
				Username:       "svc",
				ConnectTimeout: -1,
			},
			wantError: true,
			errorType: msi.ErrInvalidConfig,
		},
		{
			name: "aws iam requires region",
			config: msi.ConnectionConfig{
				Host:       "mydb.cluster.us-west-2.rds.amazonaws.com",
				Database:   "orders",
				Username:   "iam_user",
				AuthMethod: msi.AuthMethodAWSIAM,
			},
			wantError: true,
			errorType: msi.ErrInvalidConfig,
		},
		{
			name: "google iam requires instance",
			config: msi.ConnectionConfig{
				Host:       "ignored",
				Database:   "orders",
				Username:   "iam_user",
				AuthMethod: msi.AuthMethodGoogleIAM,
			},
			wantError: true,
			errorType: msi.ErrInvalidConfig,
		},
		{
			name: "google iam with instance and no host",
			config: msi.ConnectionConfig{
				Database:       "orders",
				Username:       "iam_user",
				AuthMethod:     msi.AuthMethodGoogleIAM,
				GoogleInstance: "proj:region:inst",
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("Validate() = %v, want errors.Is(..., %v)", err, tt.errorType)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestConnectionConfig_Addr(t *testing.T) {
	cfg := msi.ConnectionConfig{Host: "db.example.com"}
	if got := cfg.Addr(); got != "db.example.com:3306" {
		t.Errorf("Addr() = %q, want default port applied", got)
	}

	cfg.Port = 3307
	if got := cfg.Addr(); got != "db.example.com:3307" {
		t.Errorf("Addr() = %q, want explicit port", got)
	}
}

func TestParseAuthMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    msi.AuthMethod
		wantErr bool
	}{
		{"", msi.AuthMethodStandard, false},
		{"standard", msi.AuthMethodStandard, false},
		{"aws-iam", msi.AuthMethodAWSIAM, false},
		{"google", msi.AuthMethodGoogleIAM, false},
		{"azure", msi.AuthMethodAzureEntraID, false},
		{"kerberos", msi.AuthMethodStandard, true},
	}

	for _, tt := range tests {
		t.Run("token "+tt.in, func(t *testing.T) {
			got, err := msi.ParseAuthMethod(tt.in)
			if tt.wantErr {
				if !errors.Is(err, msi.ErrUnsupportedAuthMethod) {
					t.Fatalf("ParseAuthMethod(%q) err = %v, want ErrUnsupportedAuthMethod", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAuthMethod(%q) err = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseAuthMethod(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAuthMethod_String(t *testing.T) {
	tests := []struct {
		method msi.AuthMethod
		want   string
	}{
		{msi.AuthMethodStandard, "Standard"},
		{msi.AuthMethodAWSIAM, "AWS IAM"},
		{msi.AuthMethodGoogleIAM, "Google IAM"},
		{msi.AuthMethodAzureEntraID, "Azure Entra ID"},
		{msi.AuthMethod(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		if got := tt.method.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	if msi.AuthMethod(99).IsValid() {
		t.Error("AuthMethod(99).IsValid() = true, want false")
	}
}
