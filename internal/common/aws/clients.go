// internal/common/aws/clients.go
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/qbusiness"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/translate"
)

// Clients bundles the AWS service clients the service depends on, built from
// a single shared credential/region configuration.
type Clients struct {
	QBusiness *qbusiness.Client
	DynamoDB  *dynamodb.Client
	SES       *ses.Client
	SNS       *sns.Client
	Translate *translate.Client
}

// NewClients loads the default AWS configuration for the region and
// constructs all service clients from it.
func NewClients(ctx context.Context, region string) (*Clients, error) {
	cfg, err := loadConfig(ctx, region)
	if err != nil {
		return nil, err
	}

	return &Clients{
		QBusiness: qbusiness.NewFromConfig(cfg),
		DynamoDB:  dynamodb.NewFromConfig(cfg),
		SES:       ses.NewFromConfig(cfg),
		SNS:       sns.NewFromConfig(cfg),
		Translate: translate.NewFromConfig(cfg),
	}, nil
}

func loadConfig(ctx context.Context, region string) (awssdk.Config, error) {
	return config.LoadDefaultConfig(ctx, config.WithRegion(region))
}
