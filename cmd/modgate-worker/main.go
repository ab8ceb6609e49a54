// modgate-worker is the moderation daemon: it drains the moderation job
// queue, auto-approves clean submissions and flags the rest for human review
package main

import (
	"context"
	stderrs "errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"modgate/internal/core/classify"
	"modgate/internal/core/lexicon"
	"modgate/internal/core/moderate"
	"modgate/internal/modkit"
	"modgate/internal/modkit/module"
	"modgate/internal/modkit/repokit"
	"modgate/internal/platform/config"
	"modgate/internal/platform/logger"
	"modgate/internal/platform/store"

	auditdom "modgate/internal/services/audit/domain"
	auditmod "modgate/internal/services/audit/module"
	contentmod "modgate/internal/services/content/module"
	ledgermod "modgate/internal/services/ledger/module"
	workerdom "modgate/internal/services/modworker/domain"
	workermod "modgate/internal/services/modworker/module"
	notifymod "modgate/internal/services/notify/module"
	reviewdom "modgate/internal/services/review/domain"
	reviewmod "modgate/internal/services/review/module"
	submitdom "modgate/internal/services/submit/domain"
	submitmod "modgate/internal/services/submit/module"
)

func main() {
	root := config.New()
	l := logger.Get()

	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		AppName: "modgate-worker",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 8)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled: chCfg.MayBool("ENABLED", false),
			URL:     chCfg.MayString("URL", ""),
			Role:    "worker",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	deps := modkit.Deps{
		Cfg: root,
		Log: *l,
		PG:  st.PG,
		CH:  st.CH,
	}

	coreCfg := root.Prefix("CORE_")
	holder := lexicon.NewHolder(lexicon.FromFile(coreCfg.MayString("LEXICON_PATH", "")))

	var scorer moderate.Scorer
	if path := coreCfg.MayString("CLASSIFIER_PATH", ""); path != "" {
		model, err := classify.Load(path)
		if err != nil {
			// the primary stage alone still moderates; advanced degrades to pass
			l.Warn().Err(err).Str("path", path).Msg("classifier artifact not loaded")
		} else {
			scorer = model
		}
	}

	// base modules
	ledgerM := ledgermod.New(deps)
	contentM := contentmod.New(deps)
	notifyM := notifymod.New(deps)
	auditM := auditmod.New(deps)
	for _, m := range []modkit.Module{ledgerM, contentM, notifyM, auditM} {
		module.Register(m.Name(), m.Ports())
	}

	ledgerPorts := module.MustPortsOf[ledgermod.Ports](ledgerM)
	contentPorts := module.MustPortsOf[contentmod.Ports](contentM)
	notifyPorts := module.MustPortsOf[notifymod.Ports](notifyM)
	auditPorts := module.MustPortsOf[auditmod.Ports](auditM)

	mod := moderate.New(
		moderate.NewPrimary(holder, nil),
		moderate.NewAdvanced(scorer, coreCfg.MayFloat64("CLASSIFIER_THRESHOLD", moderate.DefaultThreshold)),
	)
	mod.Observe = func(stage string, v moderate.Verdict, conf float64) {
		auditPorts.Recorder.Record(context.Background(), auditdom.Event{
			Stage:      stage,
			IsSafe:     v.IsSafe,
			Reason:     v.Reason,
			Confidence: conf,
			CreatedAt:  time.Now().UTC(),
		})
	}

	// workflow modules on top
	workerM := workermod.New(deps, workermod.Options{}, modkit.WithPorts(workerdom.Ports{
		Ledger:    ledgerPorts.Ledger,
		Content:   contentPorts.Writer,
		Notify:    notifyPorts.Notifier,
		Moderator: mod,
	}))
	module.Register(workerM.Name(), workerM.Ports())
	workerPorts := module.MustPortsOf[workermod.Ports](workerM)

	reviewM := reviewmod.New(deps, modkit.WithPorts(reviewdom.Ports{
		Ledger:  ledgerPorts.Ledger,
		Content: contentPorts.Writer,
		Notify:  notifyPorts.Notifier,
	}))
	module.Register(reviewM.Name(), reviewM.Ports())

	submitM := submitmod.New(deps, modkit.WithPorts(submitdom.Ports{
		Ledger:    ledgerPorts.Ledger,
		Content:   contentPorts.Writer,
		Reader:    contentPorts.Reader,
		Notify:    notifyPorts.Notifier,
		Jobs:      workerPorts.Jobs,
		Moderator: mod,
	}))
	module.Register(submitM.Name(), submitM.Ports())

	// SIGHUP reloads the lexicon without a restart
	go reloadOnHUP(ctx, holder, coreCfg.MayString("LEXICON_PATH", ""))

	l.Info().Msg("modgate worker starting")
	if err := workerPorts.Worker.Run(ctx); err != nil && !stderrs.Is(err, context.Canceled) {
		l.Fatal().Err(err).Msg("moderation worker failed")
	}
	l.Info().Msg("modgate worker stopped")
}

func reloadOnHUP(ctx context.Context, holder *lexicon.Holder, path string) {
	if path == "" {
		return
	}
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	log := logger.Named("lexicon")
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			holder.Swap(lexicon.FromFile(path))
			log.Info().Str("path", path).Msg("lexicon reloaded")
		}
	}
}
