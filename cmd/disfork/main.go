package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"
	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/sigmon"
	"golang.org/x/oauth2"

	"disfork/auth"
	"disfork/deleter"
	"disfork/githubclient"
	"disfork/metrics"
	"disfork/net"
	"disfork/scan"
	"disfork/ui"
)

type Opts struct {
	LogLevel string `long:"log-level" description:"minimum level of logs to emit" value-name:"LEVEL" default:"error"`

	GitHub struct {
		Token       string `long:"github-token" description:"personal access token; skips the GitHub App flow" env:"GITHUB_TOKEN" value-name:"TOKEN"`
		AppSlug     string `long:"app-slug" description:"GitHub App slug" value-name:"SLUG" default:"disfork"`
		AppClientID string `long:"app-client-id" description:"GitHub App client ID" value-name:"ID" default:"Iv23licpLWlZABwjnLK7"`
	} `group:"GitHub Options"`

	Account         string        `long:"account" description:"user or organization to scan (defaults to the authenticated user)" value-name:"NAME"`
	Auto            bool          `long:"auto" description:"skip interactive selection and delete every useless fork"`
	Parallel        int           `long:"parallel" description:"number of parallel fetch tasks" value-name:"N" default:"6"`
	DryRun          bool          `long:"dry-run" description:"report what would be deleted without deleting anything"`
	ActivityEpsilon time.Duration `long:"activity-epsilon" description:"how much later than creation a push counts as independent activity" value-name:"DURATION" default:"90s"`

	Metrics struct {
		DatadogAPIKey string `long:"datadog-api-key" description:"key to emit to datadog" env:"DATADOG_API_KEY" value-name:"KEY"`
		Environment   string `long:"environment" description:"environment tag for metrics" env:"ENVIRONMENT" value-name:"NAME" default:"development"`
	} `group:"Metrics Options"`
}

func main() {
	godotenv.Load()

	var opts Opts
	_, err := flags.Parse(&opts)
	if err != nil {
		os.Exit(1)
	}

	logger := lager.NewLogger("disfork")
	logger.RegisterSink(lager.NewWriterSink(os.Stderr, logLevel(opts.LogLevel)))

	clk := clock.NewClock()
	emitter := metrics.BuildEmitter(logger, opts.Metrics.DatadogAPIKey, opts.Metrics.Environment)
	reporter := ui.NewReporter(os.Stderr, os.Stdin, clk)

	authHTTPClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DisableKeepAlives: true,
		},
	}
	authClient := net.NewRetryingClient(authHTTPClient, nil, clk, logger)

	provider := resolveProvider(logger, opts, authClient, clk, reporter)

	apiHTTPClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &oauth2.Transport{
			Source: auth.TokenSource(logger, provider),
			Base: &http.Transport{
				DisableKeepAlives: true,
			},
		},
	}

	apiClient := net.NewBoundedClient(
		net.NewRateLimitedClient(
			net.NewRetryingClient(apiHTTPClient, provider, clk, logger),
			clk,
			logger,
		),
		opts.Parallel,
	)

	ghClient := githubclient.NewClient(githubclient.DefaultGitHubURL, apiClient, emitter)

	session := scan.NewSession(provider, opts.Account, opts.Parallel)
	classifier := scan.NewClassifier(opts.ActivityEpsilon)
	orchestrator := scan.NewOrchestrator(logger, ghClient, classifier, session, emitter)

	reporter.Info("Scanning for forks...")

	process := ifrit.Background(sigmon.New(orchestrator, os.Interrupt))

	for verdict := range orchestrator.Verdicts() {
		reporter.Progress(verdict)
	}

	err = <-process.Wait()
	switch {
	case errors.Is(err, scan.ErrCancelled):
		reporter.Failure("Scan cancelled")
		os.Exit(2)
	case err != nil:
		reporter.Failure("Scan failed: %s", err)
		os.Exit(1)
	}

	verdicts := session.Verdicts()
	if len(verdicts) == 0 {
		reporter.Success("No fork repositories found!")
		return
	}

	selected, err := selectForks(opts, verdicts, reporter)
	if err != nil {
		reporter.Failure("Selection failed: %s", err)
		os.Exit(1)
	}

	if len(selected) == 0 {
		reporter.Info("No repositories selected for deletion")
		return
	}

	reporter.Info("Selected %d repositories for deletion:", len(selected))
	for _, repo := range selected {
		reporter.Info("  - %s", repo.FullName())
	}

	if !opts.DryRun {
		confirmed, err := reporter.Confirm(len(selected))
		if err != nil || !confirmed {
			reporter.Info("Deletion cancelled")
			return
		}

		reporter.Cooldown(len(selected))
	}

	coordinator := deleter.NewCoordinator(ghClient, opts.Parallel, emitter)
	report := coordinator.Delete(logger, selected, opts.DryRun)
	reporter.DeletionReport(report)

	// individual deletion failures are reported, not fatal
}

func resolveProvider(
	logger lager.Logger,
	opts Opts,
	authClient net.Client,
	clk clock.Clock,
	reporter *ui.Reporter,
) auth.Provider {
	if opts.GitHub.Token != "" {
		reporter.Info("Using the supplied personal access token")

		provider, err := auth.NewPersonalTokenProvider(logger, opts.GitHub.Token, githubclient.DefaultGitHubURL, authClient)
		if err != nil {
			reporter.Failure("%s", err)
			os.Exit(1)
		}

		return provider
	}

	appProvider := auth.NewAppProvider(opts.GitHub.AppClientID, opts.GitHub.AppSlug, auth.DefaultAuthURL, authClient, clk)

	if opts.Account != "" {
		reporter.Info("Install the GitHub App on %s:", opts.Account)
	} else {
		reporter.Info("Install the GitHub App on your personal account:")
	}
	reporter.Info("Visit: %s", appProvider.InstallURL())
	reporter.Info("After installation, press Enter to continue...")

	if err := reporter.WaitForEnter(); err != nil {
		reporter.Failure("%s", err)
		os.Exit(1)
	}

	err := appProvider.Authorize(logger, reporter.DeviceCode)
	if err != nil {
		reporter.Failure("%s", err)
		os.Exit(1)
	}

	reporter.Success("Authorization successful!")
	return appProvider
}

func selectForks(opts Opts, verdicts []scan.Verdict, reporter *ui.Reporter) ([]githubclient.Repository, error) {
	if opts.Auto {
		var selected []githubclient.Repository
		for _, v := range verdicts {
			if v.Useless {
				selected = append(selected, v.Repo)
			}
		}
		return selected, nil
	}

	useless := 0
	for _, v := range verdicts {
		if v.Useless {
			useless++
		}
	}
	reporter.Info("Found %d forks, %d look useless", len(verdicts), useless)

	return ui.SelectForks(verdicts)
}

func logLevel(level string) lager.LogLevel {
	switch level {
	case "debug":
		return lager.DEBUG
	case "info":
		return lager.INFO
	case "fatal":
		return lager.FATAL
	default:
		return lager.ERROR
	}
}
