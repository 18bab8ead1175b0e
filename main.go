package main

import (
	"context"
	"fmt"
	"io"
	"os"
	_ "time/tzdata"

	"ft-server/api"
	"ft-server/api/traffic"
	"ft-server/cache"
	"ft-server/catalog"
	"ft-server/config"
	"ft-server/di"
	"ft-server/field"
	"ft-server/hexagg"
	"ft-server/logging"
	"ft-server/models"
	"ft-server/modulation"
	services "ft-server/service"
	"ft-server/util"

	"github.com/spf13/cobra"
)

// densitySource is satisfied by both the local service and the HTTP client.
type densitySource interface {
	Density(ctx context.Context, q models.DensityQuery) (*models.DensityField, error)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "ft-server",
		Short:        "Paris foot-traffic density server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newServeCmd(&configPath), newRenderCmd(&configPath))
	return root
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Caller: cfg.Log.Caller})
	return cfg, nil
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			container, err := di.NewContainer(ctx, cfg)
			if err != nil {
				return err
			}

			if cfg.Warmer.Enabled {
				logging.Info().Dur("interval", cfg.Warmer.Interval).Msg("starting cache warmer")
				container.CacheWarmerService.StartPeriodicJob(ctx, cfg.Warmer.Interval)
			}
			return container.HttpServer.Start(ctx)
		},
	}
}

type renderOptions struct {
	query     models.DensityQuery
	out       string
	serverURL string
}

func newRenderCmd(configPath *string) *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame of the density field as an HTML heatmap",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if err := util.ValidateStruct(opts.query); err != nil {
				return fmt.Errorf("invalid frame: %w", err)
			}

			var source densitySource
			if opts.serverURL != "" {
				source = traffic.NewTrafficApiClient(api.NewHTTPClient(opts.serverURL))
			} else {
				source, err = newLocalSource(cfg)
				if err != nil {
					return err
				}
			}

			f, err := os.Create(opts.out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", opts.out, err)
			}
			defer f.Close()

			if err := renderFrame(cmd.Context(), source, opts.query, f); err != nil {
				return err
			}
			logging.Info().Str("out", opts.out).Msg("heatmap written")
			return nil
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&opts.query.Hour, "hour", 14, "hour of day (0-23)")
	flags.IntVar(&opts.query.Day, "day", 5, "day of week, 0 is Sunday")
	flags.IntVar(&opts.query.Minute, "minute", 0, "minute (0-59)")
	flags.StringVar(&opts.query.Resolution, "resolution", field.DefaultTier, "grid tier: low, medium, high, ultra or extreme")
	flags.StringVar(&opts.out, "out", "density.html", "output HTML file")
	flags.StringVar(&opts.serverURL, "server", "", "fetch the field from a running server instead of generating it")
	return cmd
}

// newLocalSource generates frames in process with the configured catalog.
func newLocalSource(cfg *config.Config) (*services.DensityService, error) {
	c := catalog.Default()
	if cfg.Catalog.Path != "" {
		var err error
		if c, err = util.ReadCatalogFromJSON(cfg.Catalog.Path); err != nil {
			return nil, err
		}
	}
	e := field.NewEvaluator(c, modulation.Default(), field.RandomNoise)
	gen := field.NewGenerator(field.NewRasterizer(e, catalog.ParisBounds, cfg.Field.Workers), field.NewDensifier(e))
	return services.NewDensityService(gen, hexagg.NewAggregator(hexagg.NewH3Index()), cache.NewFIFOStore("render", 1)), nil
}

func renderFrame(ctx context.Context, source densitySource, q models.DensityQuery, w io.Writer) error {
	f, err := source.Density(ctx, q)
	if err != nil {
		return fmt.Errorf("fetching density field: %w", err)
	}
	return util.PlotDensityField(f, catalog.ParisBounds.BoundingBox, w)
}
