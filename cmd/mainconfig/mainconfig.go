package mainconfig

import (
	"context"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	appconfig "github.com/wolfman30/hotel-booking-assistant/internal/config"
)

const (
	appID            = "hotel-booking-assistant"
	retryMaxAttempts = 3
)

// LoadAWSConfig builds the SDK config shared by the SES sender and the
// Bedrock clients. AWSEndpointOverride points every client at LocalStack.
func LoadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.AWSRegion),
		config.WithAppID(appID),
		config.WithRetryMaxAttempts(retryMaxAttempts),
	}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, err
	}
	if endpoint := strings.TrimSpace(cfg.AWSEndpointOverride); endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(endpoint)
	}
	return awsCfg, nil
}

// Loader returns a loader that resolves the AWS config on first use and
// hands the same result to every later caller.
func Loader(cfg *appconfig.Config) func(context.Context) (aws.Config, error) {
	var (
		once   sync.Once
		awsCfg aws.Config
		err    error
	)
	return func(ctx context.Context) (aws.Config, error) {
		once.Do(func() {
			awsCfg, err = LoadAWSConfig(ctx, cfg)
		})
		return awsCfg, err
	}
}
