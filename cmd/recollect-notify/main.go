package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/bgordon/recollect-notify/internal/pkg/app"
	"github.com/bgordon/recollect-notify/internal/pkg/config"
	"github.com/bgordon/recollect-notify/internal/pkg/extract"
	"github.com/bgordon/recollect-notify/internal/pkg/notify"
	"github.com/bgordon/recollect-notify/internal/pkg/recollect"
)

// defaultSchedule fires Sunday evenings, the same slot a crontab entry for
// the non-daemon mode would use.
const defaultSchedule = "0 18 * * 0"

type environmentVariables struct {
	ConfigPath         string `env:"RECOLLECT_CONFIG" envDefault:"config.json"`
	HTTPTimeoutSeconds int    `env:"HTTP_TIMEOUT_SECONDS" envDefault:"10"`
}

func setup() (envVars *environmentVariables, err error) {
	_, err = maxprocs.Set()
	if err != nil {
		return nil, fmt.Errorf("error setting GOMAXPROCS %w", err)
	}

	// .env is optional and never overrides real environment variables
	_ = godotenv.Load()

	envVars = &environmentVariables{}

	err = env.Parse(envVars)
	if err != nil {
		return nil, fmt.Errorf("error parsing environment variables %w", err)
	}

	return envVars, nil
}

func main() {
	force := flag.Bool("force", false, "run regardless of day (normally only runs on Sundays)")
	extractIDs := flag.Bool("extract-ids", false, "extract place_id and service_id from a pasted curl command")
	configHelp := flag.Bool("config-help", false, "show detailed help about finding your place_id and service_id")
	daemon := flag.Bool("daemon", false, "stay resident and run on a cron schedule instead of exiting")
	schedule := flag.String("schedule", defaultSchedule, "cron schedule used with -daemon")
	configPath := flag.String("config", "", "path to the config file (overrides RECOLLECT_CONFIG)")
	flag.Parse()

	exclusive := 0
	for _, set := range []bool{*force, *extractIDs, *configHelp} {
		if set {
			exclusive++
		}
	}

	if exclusive > 1 {
		fmt.Fprintln(os.Stderr, "the -force, -extract-ids and -config-help flags are mutually exclusive")
		flag.Usage()
		os.Exit(2)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	log := logrus.NewEntry(logger).WithField("component", "recollect-notify")

	if *configHelp {
		printConfigHelp()
		return
	}

	envVars, err := setup()
	if err != nil {
		log.WithError(err).Error()
		os.Exit(1)
	}

	path := envVars.ConfigPath
	if *configPath != "" {
		path = *configPath
	}

	if *extractIDs {
		runExtract(path)
		return
	}

	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrFirstRun) {
			fmt.Printf("Config file created at %s\n", path)
			fmt.Println("Please edit this file to add your configuration.")
			printConfigHelp()
			os.Exit(1)
		}

		log.WithError(err).Error("invalid configuration")
		os.Exit(1)
	}

	httpClient := &http.Client{
		Timeout: time.Duration(envVars.HTTPTimeoutSeconds) * time.Second,
	}

	notifiers, err := buildNotifiers(context.Background(), log, cfg, httpClient)
	if err != nil {
		log.WithError(err).Error()
		os.Exit(1)
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
		Force:     *force,
	}

	if *daemon {
		runDaemon(log, runner, *schedule)
		return
	}

	runner.Run()
}

// buildNotifiers wires every backend; the AWS client is only constructed when
// the sns backend is enabled so local runs never touch the AWS config chain.
func buildNotifiers(ctx context.Context, log *logrus.Entry, cfg *config.Config, httpClient notify.HTTPClient) ([]notify.Notifier, error) {
	notifiers := []notify.Notifier{
		&notify.Pushover{Log: log, Config: cfg.Notifications.Pushover, HTTP: httpClient},
		&notify.Ntfy{Log: log, Config: cfg.Notifications.Ntfy, HTTP: httpClient},
		&notify.Telegram{Log: log, Config: cfg.Notifications.Telegram},
	}

	if cfg.Notifications.SNS.Enabled {
		awsConfig, err := awscfg.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("error loading AWS configuration %w", err)
		}

		notifiers = append(notifiers, &notify.SNS{
			Log:    log,
			Config: cfg.Notifications.SNS,
			Client: sns.NewFromConfig(awsConfig),
		})
	}

	return notifiers, nil
}

// runDaemon keeps the process resident and runs the check on schedule. The
// schedule replaces the Sunday gate, so scheduled runs always force.
func runDaemon(log *logrus.Entry, runner *app.Runner, schedule string) {
	runner.Force = true

	engine := cron.New(cron.WithLocation(time.Local))

	_, err := engine.AddFunc(schedule, func() {
		log.WithField("schedule", schedule).Info("scheduled check triggered")
		runner.Run()
	})
	if err != nil {
		log.WithError(err).WithField("schedule", schedule).Error("invalid cron schedule")
		os.Exit(1)
	}

	engine.Start()
	log.WithField("schedule", schedule).Info("daemon started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx := engine.Stop()
	<-ctx.Done()
	log.Info("daemon stopped")
}

// runExtract reads a pasted request description from stdin and persists the
// extracted ids. Extraction failure mutates nothing.
func runExtract(path string) {
	fmt.Println("Please paste a curl command from your waste collection website's network requests.")
	fmt.Println("(Right-click a request in browser dev tools Network tab -> Copy as cURL)")
	fmt.Println("Press Enter twice when done pasting:")

	text, err := extract.ReadPasted(os.Stdin)
	if err != nil {
		fmt.Printf("Error reading input: %v\n", err)
		os.Exit(1)
	}

	placeID, serviceID, ok := extract.IDs(text)
	if !ok {
		fmt.Println("\nCould not extract the IDs from the provided curl command.")
		fmt.Println("Please make sure you copied a valid curl command from the ReCollect API.")
		return
	}

	fmt.Println("\nExtracted IDs:")
	fmt.Printf("place_id: %s\n", placeID)
	fmt.Printf("service_id: %s\n", serviceID)

	err = config.SaveRecollect(path, placeID, serviceID)
	if err != nil {
		fmt.Printf("Error updating config file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUpdated config file with these IDs: %s\n", path)
}

func printConfigHelp() {
	fmt.Println("\n=== HOW TO FIND YOUR RECOLLECT IDs ===")
	fmt.Println("To find your place_id and service_id:")
	fmt.Println("1. Visit your local waste management website that uses ReCollect")
	fmt.Println("2. Open the collection calendar page")
	fmt.Println("3. Open browser developer tools (F12 or right-click -> Inspect)")
	fmt.Println("4. Go to the Network tab")
	fmt.Println("5. Refresh the page and look for requests to api.recollect.net")
	fmt.Println("6. Find a request URL like:")
	fmt.Println("   https://api.recollect.net/api/places/[PLACE_ID]/services/[SERVICE_ID]/events")
	fmt.Println("")
	fmt.Println("Alternatively, copy a cURL command from the Network tab and run")
	fmt.Println("this program with -extract-ids to pull the IDs out of it.")
	fmt.Println("The IDs may also appear in the X-Recollect-Place header as: [PLACE_ID]:[SERVICE_ID]")
	fmt.Println("")
	fmt.Println("Example values:")
	fmt.Println("place_id: XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX (a UUID format)")
	fmt.Println("service_id: XXX (a numeric ID)")
	fmt.Println("=======================================")
}
