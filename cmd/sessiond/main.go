// Command sessiond is a small HTTP service exposing namespaced sessions over
// one shared cookie-bound store.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrymomot/nsession/pkg/config"
	"github.com/dmitrymomot/nsession/pkg/cookie"
	"github.com/dmitrymomot/nsession/pkg/httpserver"
	"github.com/dmitrymomot/nsession/pkg/logger"
	"github.com/dmitrymomot/nsession/pkg/requestid"
	"github.com/dmitrymomot/nsession/pkg/session"
	"github.com/dmitrymomot/nsession/pkg/sessionstore"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "sessiond:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		logCfg     logger.Config
		srvCfg     httpserver.Config
		cookieCfg  cookie.Config
		storeCfg   sessionstore.Config
		sessionCfg session.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&logCfg) },
		func() error { return config.Load(&srvCfg) },
		func() error { return config.Load(&cookieCfg) },
		func() error { return config.Load(&storeCfg) },
		func() error { return config.Load(&sessionCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	log := logger.NewFromConfig(logCfg,
		logger.WithContextExtractors(requestid.LoggerExtractor(), sessionstore.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}

	b, err := openBackend(ctx, storeCfg, log)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "session backend ready", logger.Backend(b.name))

	if b.gc != nil {
		go sessionstore.RunGC(ctx, b.gc, storeCfg.GCInterval, log)
	}

	rt, err := sessionstore.NewFromConfig(b.backend, cookies, storeCfg, sessionstore.WithLogger(log))
	if err != nil {
		b.close()
		return err
	}

	srv := httpserver.NewFromConfig(srvCfg,
		httpserver.WithLogger(log),
		httpserver.WithOnShutdown(cancel),
		httpserver.WithOnShutdown(b.close),
	)
	return srv.Run(ctx, newRouter(rt, sessionCfg.Options(), log, b.probes...))
}
