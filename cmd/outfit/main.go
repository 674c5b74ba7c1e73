// Command outfit 从衣橱数据中推荐上下装搭配。
//
//	outfit -catalog wardrobe.csv -temp 15 -purpose casual
//	outfit -catalog wardrobe.csv -list
//	outfit -config outfit.yaml -serve :8080
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/rushteam/outfit"
	"github.com/rushteam/outfit/catalog"
	"github.com/rushteam/outfit/config"
	"github.com/rushteam/outfit/config/builders"
	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/pkg/logging"
	"github.com/rushteam/outfit/rerank"
	"github.com/rushteam/outfit/server"
	"github.com/rushteam/outfit/store"
)

type flags struct {
	config  string
	catalog string
	temp    string
	purpose string
	color   string
	limit   int
	serve   string
	list    bool
}

func parseFlags(args []string) (*flags, error) {
	fs := flag.NewFlagSet("outfit", flag.ContinueOnError)
	f := &flags{}
	fs.StringVar(&f.config, "config", "", "config file (yaml)")
	fs.StringVar(&f.catalog, "catalog", "", "wardrobe file (csv / json / yaml), overrides catalog.path")
	fs.StringVar(&f.temp, "temp", "", "temperature in celsius")
	fs.StringVar(&f.purpose, "purpose", "", "casual / formal / ceremonial")
	fs.StringVar(&f.color, "color", "", "color shared by top and bottom")
	fs.IntVar(&f.limit, "limit", 0, "number of pairs to print, overrides engine.limit")
	fs.StringVar(&f.serve, "serve", "", "serve HTTP on addr instead of printing")
	fs.BoolVar(&f.list, "list", false, "list the wardrobe and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "outfit:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	if f.catalog != "" {
		cfg.Catalog.Path = f.catalog
	}
	if f.limit > 0 {
		cfg.Engine.Limit = f.limit
	}

	logger := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	engine, err := buildEngine(ctx, cfg, st, logger)
	if err != nil {
		return err
	}

	switch {
	case f.list:
		return printCatalog(stdout, engine.Catalog())
	case f.serve != "":
		srv := server.New(engine, server.WithLogger(logger), server.WithDefaultLimit(cfg.Engine.Limit))
		return srv.ListenAndServe(ctx, f.serve)
	}

	q, err := parseQuery(f)
	if err != nil {
		return err
	}
	res, err := engine.Recommend(ctx, q)
	if err != nil {
		return err
	}
	return printPairs(stdout, res, cfg.Engine.Limit)
}

// openStore 配置了 redis.addr 时使用 Redis，否则使用进程内存储。
func openStore(ctx context.Context, cfg *config.Config) (core.Store, error) {
	if cfg.Redis.Addr == "" {
		return store.NewMemoryStore(), nil
	}
	rs, err := store.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func buildEngine(ctx context.Context, cfg *config.Config, st core.Store, logger zerolog.Logger) (*outfit.Engine, error) {
	policy, err := catalog.ParseRowPolicy(cfg.Catalog.RowPolicy)
	if err != nil {
		return nil, err
	}
	src, err := catalogSource(cfg, st)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(ctx, src, catalog.WithRowPolicy(policy), catalog.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	factory := config.DefaultFactory()
	for typ, b := range builders.StoreBuilders(st) {
		factory.Register(typ, b)
	}
	nodes, err := cfg.PipelineConfig().BuildNodes(factory)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	modelFactory, err := cfg.ModelFactory()
	if err != nil {
		return nil, err
	}

	return outfit.New(cat,
		outfit.WithLogger(logger),
		outfit.WithCandidates(cfg.Engine.Candidates),
		outfit.WithModel(modelFactory),
		outfit.WithColorTable(cfg.ColorTable()),
		outfit.WithExtraNodes(nodes...),
	)
}

// catalogSource 优先读本地文件；catalog.path 为空且配置了 Redis 时读 catalog.key。
func catalogSource(cfg *config.Config, st core.Store) (catalog.Source, error) {
	var format catalog.Format
	if cfg.Catalog.Format != "" {
		f, err := catalog.ParseFormat(cfg.Catalog.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	if cfg.Catalog.Path != "" {
		return &catalog.FileSource{Path: filepath.Clean(cfg.Catalog.Path), Format: format}, nil
	}
	if cfg.Redis.Addr != "" && cfg.Catalog.Key != "" {
		return &catalog.StoreSource{Store: st, Key: cfg.Catalog.Key, Format: format}, nil
	}
	return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeLoad, "catalog: no path or redis key configured")
}

func parseQuery(f *flags) (core.Query, error) {
	q := core.Query{Purpose: f.purpose, Color: f.color}
	if f.temp != "" {
		t, err := strconv.ParseFloat(f.temp, 64)
		if err != nil {
			return q, core.WrapDomainError("cli", core.ErrorCodeInvalidInput, "invalid -temp "+f.temp, err)
		}
		q.Temperature = &t
	}
	return q, nil
}

func printPairs(w io.Writer, res *outfit.Result, limit int) error {
	if res.NoMatch {
		_, err := fmt.Fprintln(w, "no matching outfit")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTOP\tBOTTOM\tSCORE")
	for i, p := range rerank.Truncate(res.Pairs, limit) {
		fmt.Fprintf(tw, "%d\t%s (%s)\t%s (%s)\t%.3f\n", i+1,
			p.Top.Item.Name, p.Top.Item.Color,
			p.Bottom.Item.Name, p.Bottom.Item.Color,
			p.Score)
	}
	return tw.Flush()
}

func printCatalog(w io.Writer, cat *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tCOLOR\tPURPOSE\tTEMP\tIMAGE")
	for _, it := range cat.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g..%g\t%s\n",
			it.Name, it.Type, it.Color, it.Purpose, it.TempMin, it.TempMax, it.Image)
	}
	return tw.Flush()
}
