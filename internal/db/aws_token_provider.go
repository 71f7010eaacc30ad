package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/rds/auth"
)

// rdsTokenTTL is how long RDS accepts an IAM auth token after issuance.
const rdsTokenTTL = 15 * time.Minute

// AWSIAMTokenProvider mints RDS IAM auth tokens that stand in for the MySQL
// password. Credentials come from the SDK's default chain; the resolved AWS
// config is loaded once and reused across token requests.
type AWSIAMTokenProvider struct {
	endpoint string // host:port of the RDS instance
	region   string
	username string

	loadOnce sync.Once
	awsCfg   aws.Config
	loadErr  error
}

// NewAWSIAMTokenProvider validates the target coordinates up front so a
// misconfigured invocation fails before any dial attempt.
func NewAWSIAMTokenProvider(endpoint, region, username string) (*AWSIAMTokenProvider, error) {
	switch {
	case endpoint == "":
		return nil, fmt.Errorf("AWS IAM auth requires endpoint (host:port)")
	case region == "":
		return nil, fmt.Errorf("AWS IAM auth requires region (use --aws-region or $AWS_REGION)")
	case username == "":
		return nil, fmt.Errorf("AWS IAM auth requires database username")
	}

	return &AWSIAMTokenProvider{
		endpoint: endpoint,
		region:   region,
		username: username,
	}, nil
}

// GetToken returns a fresh signed token and its expiry. Each call builds a
// new token; RDS accepts it for rdsTokenTTL from issuance.
func (p *AWSIAMTokenProvider) GetToken(ctx context.Context) (string, time.Time, error) {
	p.loadOnce.Do(func() {
		p.awsCfg, p.loadErr = config.LoadDefaultConfig(ctx, config.WithRegion(p.region))
	})
	if p.loadErr != nil {
		return "", time.Time{}, fmt.Errorf("failed to load AWS config: %w", p.loadErr)
	}

	token, err := auth.BuildAuthToken(ctx, p.endpoint, p.region, p.username, p.awsCfg.Credentials)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to build RDS auth token: %w", err)
	}

	return token, time.Now().Add(rdsTokenTTL), nil
}

func (p *AWSIAMTokenProvider) String() string {
	return fmt.Sprintf("AWSIAMTokenProvider(endpoint=%s, region=%s, user=%s)", p.endpoint, p.region, p.username)
}
