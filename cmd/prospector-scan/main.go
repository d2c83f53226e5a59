package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"prospector/internal/modkit"
	"prospector/internal/modkit/module"
	"prospector/internal/platform/config"
	"prospector/internal/platform/logger"
	"prospector/internal/platform/store"

	prospectsmod "prospector/internal/services/prospects/module"
	scansdom "prospector/internal/services/scans/domain"
	scansmod "prospector/internal/services/scans/module"
	weightsmod "prospector/internal/services/weights/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	l := logger.Get()

	var (
		file   = flag.String("file", "", "path to the raw input file")
		user   = flag.String("user", "", "user id (uuid)")
		format = flag.String("format", "text", "input format: text or csv")
	)
	flag.Parse()

	if *file == "" || *user == "" {
		log.Fatal("file/user are required")
	}
	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
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

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// Build dependency modules first
	pm := prospectsmod.New(deps)
	prospectPorts := module.MustPortsOf[prospectsmod.Ports](pm)

	wm := weightsmod.New(deps, prospectPorts.Query, prospectPorts.Writer)
	weightPorts := module.MustPortsOf[weightsmod.Ports](wm)

	sm := scansmod.New(deps, prospectPorts.Writer, weightPorts.Reader)
	scanPorts := module.MustPortsOf[scansmod.Ports](sm)

	// Register ports
	module.Register(pm.Name(), pm.Ports())
	module.Register(wm.Name(), wm.Ports())
	module.Register(sm.Name(), sm.Ports())

	ctx := context.Background()
	id, err := scanPorts.Runner.RunScan(ctx, scansdom.RunInput{
		UserID:   *user,
		RawInput: string(raw),
		Format:   *format,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("scan rejected")
	}

	// Drain synchronously; the queue may hold older jobs too
	for {
		n, err := scanPorts.Worker.DrainOnce(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("scan failed")
		}
		if n == 0 {
			break
		}
	}

	view, err := scanPorts.Query.Job(ctx, id)
	if err != nil {
		l.Fatal().Err(err).Msg("job lookup failed")
	}
	out, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		l.Fatal().Err(err).Msg("encode job view")
	}
	fmt.Println(string(out))
}
