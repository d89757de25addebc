package mainconfig

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/wolfman30/hotel-booking-assistant/internal/config"
)

func TestLoadAWSConfigStaticCredentialsAndEndpoint(t *testing.T) {
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	cfg := &appconfig.Config{
		AWSRegion:           "eu-west-1",
		AWSAccessKeyID:      "test",
		AWSSecretAccessKey:  "secret",
		AWSEndpointOverride: "http://localhost:4566",
	}

	awsCfg, err := LoadAWSConfig(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", awsCfg.Region)
	assert.Equal(t, "http://localhost:4566", aws.ToString(awsCfg.BaseEndpoint))
	assert.Equal(t, appID, awsCfg.AppID)
	assert.Equal(t, retryMaxAttempts, awsCfg.RetryMaxAttempts)

	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test", creds.AccessKeyID)
}

func TestLoadAWSConfigWithoutOverride(t *testing.T) {
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	awsCfg, err := LoadAWSConfig(context.Background(), &appconfig.Config{AWSRegion: "us-east-1"})
	require.NoError(t, err)
	assert.Nil(t, awsCfg.BaseEndpoint)
}

func TestLoaderMemoizes(t *testing.T) {
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	cfg := &appconfig.Config{AWSRegion: "eu-west-1"}
	load := Loader(cfg)

	first, err := load(context.Background())
	require.NoError(t, err)

	cfg.AWSRegion = "ap-south-1"
	second, err := load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Region, second.Region)
}
