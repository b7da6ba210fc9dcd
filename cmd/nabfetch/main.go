package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/alecthomas/kong"

	nab "github.com/MikkoParkkola/nab-sub001"
	"github.com/MikkoParkkola/nab-sub001/catalog"
	"github.com/MikkoParkkola/nab-sub001/fingerprint"
	"github.com/MikkoParkkola/nab-sub001/goquery"
	nabhttp "github.com/MikkoParkkola/nab-sub001/http"
	nabslog "github.com/MikkoParkkola/nab-sub001/slog"
	"github.com/MikkoParkkola/nab-sub001/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("nabfetch"),
		kong.Description("Fetch a URL disguised as a real browser and print it as markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	if err := cli.Validate(); err != nil {
		return err
	}

	// Quiet by default; --verbose surfaces the decorator logs.
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps, cleanup, err := m.wire(cli, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	deps.Stdout = stdout
	deps.Stderr = stderr

	return cli.Run(ctx, deps)
}

// wire assembles the fetch pipeline: catalog, generator, client,
// router, and the optional page cache.
func (m *Main) wire(cli *CLI, logger *slog.Logger) (*Dependencies, func(), error) {
	svc, err := catalog.NewService()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open version catalog: %w", err)
	}

	var versions nab.VersionService = svc
	if cli.Verbose {
		versions = nabslog.NewLoggingVersionService(versions, logger)
	}

	gen := fingerprint.NewGenerator(versions)

	timeout := cli.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	var client *nabhttp.Client
	if cli.Adaptive {
		client = nabhttp.NewAdaptiveClient(gen,
			nabhttp.WithTimeout(timeout),
			nabhttp.WithChallengeDetector(goquery.NewDetector()),
		)
	} else {
		opts := []nabhttp.Option{nabhttp.WithTimeout(timeout)}
		if cli.Family != "" {
			opts = append(opts, nabhttp.WithProfile(nab.Family(cli.Family), nab.Platform(cli.Platform)))
		}
		client = nabhttp.NewClient(gen, opts...)
	}

	var fetcher nab.Fetcher = client
	if cli.Verbose {
		fetcher = nabslog.NewLoggingFetcher(fetcher, logger)
	}

	deps := &Dependencies{
		Client:  client,
		Fetcher: fetcher,
		Router:  newRouter(),
	}

	cleanup := func() { fetcher.Close() }

	if cli.Cache != "" {
		cache, err := sqlite.NewPageCache(cli.Cache)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to open page cache: %w", err)
		}
		deps.Cache = cache
		cleanup = func() {
			cache.Close()
			fetcher.Close()
		}
	}

	return deps, cleanup, nil
}

// hostsOf extracts the unique hosts of the given URLs, in order.
func hostsOf(rawURLs []string) []string {
	seen := make(map[string]bool)
	var hosts []string
	for _, raw := range rawURLs {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			continue
		}
		if !seen[u.Host] {
			seen[u.Host] = true
			hosts = append(hosts, u.Host)
		}
	}
	return hosts
}
