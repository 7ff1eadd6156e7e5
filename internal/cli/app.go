package cli

import (
	"io"
	"log/slog"

	"github.com/peterfpeterson/finddata/internal/domain"
	"github.com/peterfpeterson/finddata/internal/infra/config"
	"github.com/peterfpeterson/finddata/internal/infra/httpclient"
	"github.com/peterfpeterson/finddata/internal/infra/icat"
	"github.com/peterfpeterson/finddata/internal/infra/logger"
	"github.com/peterfpeterson/finddata/internal/ports"
)

// appCtx holds the wiring for one invocation: resolved configuration,
// the logger every layer shares, and the catalog client built from both.
type appCtx struct {
	cfg     domain.Config
	log     *slog.Logger
	catalog ports.Catalog
}

func buildApp(flags *rootFlags, logw io.Writer) (*appCtx, error) {
	level, err := logger.Parse(flags.loglevel)
	if err != nil {
		return nil, err
	}
	log := logger.New(logw, level)

	path, required := config.Resolve(flags.config)
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}
	log.Debug("config.loaded", "path", path, "base_url", cfg.Catalog.BaseURL, "timeout", cfg.HTTP.Timeout)

	hc := httpclient.DefaultConfig()
	hc.Timeout = cfg.HTTP.Timeout
	exec := httpclient.NewExecutor(
		httpclient.WithClient(httpclient.New(hc)),
		httpclient.WithTimeout(cfg.HTTP.Timeout),
	)

	return &appCtx{
		cfg:     cfg,
		log:     log,
		catalog: icat.New(cfg.Catalog.BaseURL, icat.WithExecutor(exec), icat.WithLogger(log)),
	}, nil
}

// expandAll expands every run token and concatenates the results in
// argument order, duplicates included.
func expandAll(tokens []string, log *slog.Logger) []int {
	runs := []int{}
	for _, tok := range tokens {
		runs = append(runs, domain.ExpandRuns(tok, log)...)
	}
	return runs
}
