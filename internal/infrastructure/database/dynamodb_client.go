package database

import (
	"context"
	"os"

	"placetopay_checkout/internal/infrastructure/logging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"
)

// Table names used by the checkout repositories.
//
// Supported env vars:
//   - DYNAMODB_PAYMENTS_TABLE (default: checkout_payments)
//   - DYNAMODB_ORDERS_TABLE (default: checkout_orders)
type Tables struct {
	Payments string
	Orders   string
}

func TablesFromEnv() Tables {
	return Tables{
		Payments: getenvDefault("DYNAMODB_PAYMENTS_TABLE", "checkout_payments"),
		Orders:   getenvDefault("DYNAMODB_ORDERS_TABLE", "checkout_orders"),
	}
}

// ConnectDynamoDB creates a DynamoDB client using environment variables.
//
// Supported env vars (local-friendly):
//   - AWS_REGION (default: us-east-1)
//   - AWS_ACCESS_KEY_ID (default: local)
//   - AWS_SECRET_ACCESS_KEY (default: local)
//   - DYNAMODB_ENDPOINT (optional; e.g. http://dynamodb:8000)
func ConnectDynamoDB(logger *logrus.Logger) *dynamodb.Client {
	log := logging.Component(logger, "dynamodb")

	cfg, err := NewDynamoDBConfigFromEnv(context.Background())
	if err != nil {
		log.WithError(err).Fatal("[database][dynamodb] failed to create config")
	}

	endpoint := os.Getenv("DYNAMODB_ENDPOINT")
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	log.WithFields(logrus.Fields{"region": cfg.Region, "endpoint": endpoint}).Info("[database][dynamodb] client initialized")
	return client
}

func NewDynamoDBConfigFromEnv(ctx context.Context) (aws.Config, error) {
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(
		getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		"",
	)

	return config.LoadDefaultConfig(ctx,
		config.WithRegion(getenvDefault("AWS_REGION", "us-east-1")),
		config.WithCredentialsProvider(creds),
	)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
