package cmd

import (
	"fmt"
	"os"

	"github.com/flanksource/commons/logger"
	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/purpom-media-lab/daily-report/chat"
	"github.com/purpom-media-lab/daily-report/events"
	"github.com/purpom-media-lab/daily-report/linear"
	"github.com/purpom-media-lab/daily-report/telemetry"
	"github.com/purpom-media-lab/daily-report/workspace"
)

var (
	httpPort       int
	channel        string
	workspacesFile string

	otelcollectorURL string
	otelServiceName  string
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Root runs in serve mode by default, or as a Lambda handler when the
// Lambda runtime environment is detected.
var Root = &cobra.Command{
	Use: "daily-report",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.UseZap()

		// Local development convenience, mirrors the upstream dotenv setup.
		_ = godotenv.Load()

		if otelcollectorURL != "" {
			logger.Infof("Sending traces to %s", otelcollectorURL)
			_ = telemetry.InitTracer(otelServiceName, otelcollectorURL, true)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
			runLambda()
			return
		}
		serve()
	},
}

func ServerFlags(flags *pflag.FlagSet) {
	flags.IntVar(&httpPort, "httpPort", 8080, "Port to listen on in serve mode")
	flags.StringVar(&channel, "channel", envOr("REPORT_CHANNEL", "#daily"), "Channel the reports are posted to")
	flags.StringVar(&workspacesFile, "workspaces", "", "YAML file overriding the built-in workspace registry")

	flags.StringVar(&otelcollectorURL, "otel-collector-url", "", "OpenTelemetry gRPC Collector URL in host:port format")
	flags.StringVar(&otelServiceName, "otel-service-name", "daily-report", "OpenTelemetry service name for the resource")
}

func envOr(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// buildApp wires the echo app: signature-verified event endpoint, probes
// and prometheus metrics on the same listener.
func buildApp() *echo.Echo {
	token := os.Getenv("SLACK_AUTH_TOKEN")
	if token == "" {
		logger.Fatalf("SLACK_AUTH_TOKEN is not set")
	}
	signingSecret := os.Getenv("SLACK_SIGNING_SECRET")
	if signingSecret == "" {
		logger.Fatalf("SLACK_SIGNING_SECRET is not set")
	}

	registry, err := workspace.Load(workspacesFile)
	if err != nil {
		logger.Fatalf("failed to load workspace registry: %v", err)
	}

	router := events.NewRouter(chat.NewSlack(token), linear.NewClient(), registry, channel, signingSecret)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoprometheus.NewMiddleware("daily_report"))
	e.GET("/metrics", echoprometheus.NewHandler())
	router.RegisterRoutes(e)

	return e
}

func serve() {
	logger.Infof("daily-report %s (%s, built %s)", version, commit, date)
	e := buildApp()
	if err := e.Start(fmt.Sprintf(":%d", httpPort)); err != nil {
		e.Logger.Fatal(err)
	}
}

func init() {
	ServerFlags(Root.PersistentFlags())
	Root.AddCommand(Serve, Lambda)
}
