package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/caarlos0/env"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/bgordon/recollect-notify/internal/pkg/app"
	"github.com/bgordon/recollect-notify/internal/pkg/config"
	"github.com/bgordon/recollect-notify/internal/pkg/notify"
	"github.com/bgordon/recollect-notify/internal/pkg/recollect"
)

const timeout = 10

type environmentVariables struct {
	ConfigPath string `env:"RECOLLECT_CONFIG" envDefault:"config.json"`
}

func setup() (envVars *environmentVariables, err error) {
	_, err = maxprocs.Set()
	if err != nil {
		return nil, fmt.Errorf("error setting GOMAXPROCS %w", err)
	}

	envVars = &environmentVariables{}

	err = env.Parse(envVars)
	if err != nil {
		return nil, fmt.Errorf("error parsing environment variables %w", err)
	}

	return envVars, nil
}

// HandleRequest runs one notification check per scheduled EventBridge
// trigger. The schedule replaces the Sunday gate, so the run always forces.
func HandleRequest(ctx context.Context) error {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	log := logrus.NewEntry(logger).WithField("component", "recollect-notify-lambda")
	log.Info("starting up")

	defer log.Info("shutting down")

	envVars, err := setup()
	if err != nil {
		log.WithError(err).Error()
		return err
	}

	cfg, err := config.Load(envVars.ConfigPath)
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		return err
	}

	httpClient := &http.Client{
		Timeout: time.Duration(time.Second * timeout),
	}

	notifiers := []notify.Notifier{
		&notify.Pushover{Log: log, Config: cfg.Notifications.Pushover, HTTP: httpClient},
		&notify.Ntfy{Log: log, Config: cfg.Notifications.Ntfy, HTTP: httpClient},
		&notify.Telegram{Log: log, Config: cfg.Notifications.Telegram},
	}

	if cfg.Notifications.SNS.Enabled {
		awsConfig, err := awscfg.LoadDefaultConfig(ctx)
		if err != nil {
			log.WithError(err).Error()
			return err
		}

		notifiers = append(notifiers, &notify.SNS{
			Log:    log,
			Config: cfg.Notifications.SNS,
			Client: sns.NewFromConfig(awsConfig),
		})
	}

	runner := &app.Runner{
		Log: log,
		Fetcher: &recollect.Client{
			Log: log,
			Config: recollect.Config{
				PlaceID:   cfg.Recollect.PlaceID,
				ServiceID: cfg.Recollect.ServiceID,
			},
			HTTP: httpClient,
		},
		Notifiers: notifiers,
		Force:     true,
	}

	runner.Run()

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
