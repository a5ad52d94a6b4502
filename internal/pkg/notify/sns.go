package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sirupsen/logrus"

	"github.com/bgordon/recollect-notify/internal/pkg/config"
)

// SNSAPI is the subset of the SNS client the dispatcher needs.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SNS struct {
	Log    *logrus.Entry
	Config config.SNS
	Client SNSAPI
}

func (s *SNS) Name() string {
	return "sns"
}

func (s *SNS) Enabled() bool {
	return s.Config.Enabled && s.Client != nil
}

func (s *SNS) Send(message string) error {
	body := fmt.Sprintf("%s\n%s", Title, message)

	input := &sns.PublishInput{
		Message:  &body,
		TopicArn: &s.Config.TopicARN,
	}

	_, err := s.Client.Publish(context.Background(), input)
	if err != nil {
		return fmt.Errorf("error publishing to AWS SNS topic %s: %w", s.Config.TopicARN, err)
	}

	return nil
}
