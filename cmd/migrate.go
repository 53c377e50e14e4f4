package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"db-shuttle/internal/config"
	"db-shuttle/internal/connector"
	"db-shuttle/internal/errs"
	"db-shuttle/internal/pipeline"
	"db-shuttle/internal/report"
)

var (
	cfgFile      string
	inputURL     string
	outputURL    string
	tableNames   []string
	anonFields   []string
	skipFields   []string
	batchSize    int
	parallel     int
	dryRun       bool
	showProgress bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy tables from one database to another",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		src := connector.New(cfg.Source, log)
		if err := src.Connect(ctx); err != nil {
			return err
		}
		defer src.Disconnect()

		if dryRun {
			return printPlan(ctx, src, cfg)
		}

		dst := connector.New(cfg.Destination, log)
		if err := dst.Connect(ctx); err != nil {
			return err
		}
		defer dst.Disconnect()

		p := pipeline.New(src, dst, cfg, log)

		if showProgress {
			bars := newBarSet()
			p.OnProgress(bars.update)
			uiprogress.Start()
		}

		start := time.Now()
		results, err := p.MigrateAll(ctx, cfg.Tables)
		if showProgress {
			uiprogress.Stop()
		}
		if err != nil {
			return err
		}

		fmt.Println("\nSummary:")
		var total int64
		var failed int
		for i, r := range results {
			icon := "✓"
			if r.Err != nil {
				icon = "!"
				failed++
			}
			fmt.Printf("[%s] [%02d/%02d] %-24s : %d rows\n", icon, i+1, len(results), r.Table, r.Rows)
			if r.Err != nil {
				fmt.Printf("    └ %v\n", r.Err)
			}
			total += r.Rows
		}
		fmt.Printf("Total rows migrated: %d (elapsed %s)\n", total, time.Since(start).Round(time.Millisecond))

		if failed > 0 {
			return fmt.Errorf("%d of %d tables failed", failed, len(results))
		}
		return nil
	},
}

// buildConfig resolves the config-file and ad-hoc flag forms. The two are
// mutually exclusive; flags changed on the command line still override the
// file's batchSize and parallel fallbacks.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfgFile != "" && (inputURL != "" || outputURL != "") {
		return nil, errs.New(errs.KindConfiguration, "--config and --input/--output are mutually exclusive")
	}

	var cfg *config.Config
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		if inputURL == "" || outputURL == "" {
			return nil, errs.New(errs.KindConfiguration, "either --config or both --input and --output are required")
		}
		source, err := config.ParseEndpoint(inputURL)
		if err != nil {
			return nil, err
		}
		destination, err := config.ParseEndpoint(outputURL)
		if err != nil {
			return nil, err
		}
		if len(tableNames) == 0 && (len(anonFields) > 0 || len(skipFields) > 0) {
			return nil, errs.New(errs.KindConfiguration, "--anonymize and --exclude require --tables")
		}
		specs := make([]config.TableSpec, len(tableNames))
		for i, name := range tableNames {
			specs[i] = config.TableSpec{
				Name:            name,
				AnonymizeFields: anonFields,
				ExcludeFields:   skipFields,
			}
		}
		cfg = &config.Config{
			Source:      source,
			Destination: destination,
			Tables:      specs,
			BatchSize:   batchSize,
			Parallel:    parallel,
		}
	}

	if cmd.Flags().Changed("batch-size") {
		cfg.BatchSize = batchSize
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = parallel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printPlan shows what a run would do without touching the destination.
func printPlan(ctx context.Context, src connector.Connector, cfg *config.Config) error {
	fmt.Println("Dry run: no data will be written.")

	specByTable := make(map[string]config.TableSpec, len(cfg.Tables))
	var names []string
	for _, spec := range cfg.Tables {
		specByTable[spec.Name] = spec
		names = append(names, spec.Name)
	}
	reports, err := report.Analyze(ctx, src, names)
	if err != nil {
		return err
	}

	for _, r := range reports {
		spec := specByTable[r.Table]
		forced := make(map[string]bool, len(spec.AnonymizeFields))
		for _, f := range spec.AnonymizeFields {
			forced[f] = true
		}
		excluded := make(map[string]bool, len(spec.ExcludeFields))
		for _, f := range spec.ExcludeFields {
			excluded[f] = true
		}

		fmt.Printf("\n%s (%d rows)\n", r.Table, r.RowCount)
		for _, f := range r.Fields {
			switch {
			case excluded[f.Name]:
				fmt.Printf("  %-24s %-8s excluded\n", f.Name, f.Type)
			case f.Sensitive || forced[f.Name]:
				fmt.Printf("  %-24s %-8s anonymized\n", f.Name, f.Type)
			default:
				fmt.Printf("  %-24s %-8s copied\n", f.Name, f.Type)
			}
		}
	}
	return nil
}

// barSet maps tables to progress bars; parallel migrations report from
// multiple goroutines.
type barSet struct {
	mu   sync.Mutex
	bars map[string]*uiprogress.Bar
}

func newBarSet() *barSet {
	return &barSet{bars: map[string]*uiprogress.Bar{}}
}

func (s *barSet) update(ev pipeline.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bar, ok := s.bars[ev.Table]
	if !ok {
		total := int(ev.Total)
		if total <= 0 {
			total = int(ev.Processed)
		}
		bar = uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
		name := ev.Table
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return fmt.Sprintf("%-20s", name)
		})
		s.bars[ev.Table] = bar
	}
	// Row counts are advisory; the streamed total may overrun the snapshot.
	if n := int(ev.Processed); n > bar.Total {
		bar.Total = n
	}
	bar.Set(int(ev.Processed))
}

func init() {
	RootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().StringVar(&cfgFile, "config", "", "migration config file (YAML or JSON)")
	migrateCmd.Flags().StringVar(&inputURL, "input", "", "source endpoint URL")
	migrateCmd.Flags().StringVar(&outputURL, "output", "", "destination endpoint URL")
	migrateCmd.Flags().StringSliceVarP(&tableNames, "tables", "t", nil, "tables to migrate (comma-separated; empty = all)")
	migrateCmd.Flags().StringSliceVar(&anonFields, "anonymize", nil, "field names to force-anonymize")
	migrateCmd.Flags().StringSliceVar(&skipFields, "exclude", nil, "field names to drop entirely")
	migrateCmd.Flags().IntVar(&batchSize, "batch-size", config.DefaultBatchSize, "rows per read/write batch")
	migrateCmd.Flags().IntVar(&parallel, "parallel", 1, "tables migrated concurrently")
	migrateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "describe the plan without writing")
	migrateCmd.Flags().BoolVar(&showProgress, "progress", true, "render per-table progress bars")
}
