package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hypocalc/adapters/evaluators"
	"hypocalc/adapters/gonumdist"
	"hypocalc/app"
	"hypocalc/domain/hypotest"
	"hypocalc/internal"
	"hypocalc/internal/config"
	"hypocalc/ui"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))
	calc := app.NewCalcService(evaluators.NewEngine(gonumdist.NewProvider()), logger)

	rootCmd := &cobra.Command{
		Use:   "hypocalc",
		Short: "Interactive calculator for classical hypothesis test statistics",
		Long: `hypocalc computes test statistics, reference distributions, critical
values and p-values for classical hypothesis tests. It reports the numbers
only; interpreting them is up to you.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(calc, cfg)
		},
	}

	rootCmd.AddCommand(
		newServeCmd(calc, cfg, logger),
		newEvalCmd(calc),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCmd(calc *app.CalcService, cfg *config.Config, logger *internal.Logger) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as a JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = cfg.Server.Port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := ui.NewServer(calc, logger)
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return server.Start(ctx, ":"+port)
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (defaults to PORT env)")
	return cmd
}

func newEvalCmd(calc *app.CalcService) *cobra.Command {
	var (
		kindStr, tailStr   string
		alpha              float64
		data1, data2       string
		mean1, stddev1     float64
		mean2, stddev2     float64
		n1, n2             int
		mu0, delta         float64
		sigmaSq1, sigmaSq2 float64
		sigmaSq0, p0       float64
		successes1, trials1 int
		successes2, trials2 int
		phat1, phat2       float64
		asJSON             bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate one test non-interactively",
		Long: `Evaluate a single hypothesis test from flags.

Samples come either from summary flags (--mean1/--stddev1/--n1) or from
--data1, which accepts inline values ("10 12 9 11") or a file reference
("@values.xlsx:Sheet1:A", "@values.csv::B").

Example:
  hypocalc eval --kind mean_unknown_variance --mean1 15.2 --stddev1 2.3 --n1 25 --mu0 14.5 --alpha 0.05`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.CalcRequest{
				Kind:     hypotest.TestKind(kindStr),
				Alpha:    alpha,
				Tail:     hypotest.Tail(tailStr),
				Mu0:      mu0,
				Delta:    delta,
				SigmaSq1: sigmaSq1,
				SigmaSq2: sigmaSq2,
				SigmaSq0: sigmaSq0,
				P0:       p0,
			}

			var err error
			if req.Input1, err = sampleFromFlags(data1, mean1, stddev1, n1); err != nil {
				return err
			}
			if req.Input2, err = sampleFromFlags(data2, mean2, stddev2, n2); err != nil {
				return err
			}
			req.Prop1 = proportionFromFlags(cmd, "successes1", successes1, trials1, phat1)
			req.Prop2 = proportionFromFlags(cmd, "successes2", successes2, trials2, phat2)

			result, err := calc.Evaluate(req)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindStr, "kind", "", "test kind (see 'hypocalc' menu for the list)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance level")
	cmd.Flags().StringVar(&tailStr, "tail", string(hypotest.TailTwoSided), "tail configuration: two_sided|left|right")
	cmd.Flags().StringVar(&data1, "data1", "", "raw sample 1 (inline values or @file[:sheet[:column]])")
	cmd.Flags().StringVar(&data2, "data2", "", "raw sample 2 (inline values or @file[:sheet[:column]])")
	cmd.Flags().Float64Var(&mean1, "mean1", 0, "sample 1 mean")
	cmd.Flags().Float64Var(&stddev1, "stddev1", 0, "sample 1 standard deviation")
	cmd.Flags().IntVar(&n1, "n1", 0, "sample 1 size")
	cmd.Flags().Float64Var(&mean2, "mean2", 0, "sample 2 mean")
	cmd.Flags().Float64Var(&stddev2, "stddev2", 0, "sample 2 standard deviation")
	cmd.Flags().IntVar(&n2, "n2", 0, "sample 2 size")
	cmd.Flags().Float64Var(&mu0, "mu0", 0, "hypothesized mean")
	cmd.Flags().Float64Var(&delta, "delta", 0, "hypothesized paired-difference mean")
	cmd.Flags().Float64Var(&sigmaSq1, "sigma-sq1", 0, "known population variance, sample 1")
	cmd.Flags().Float64Var(&sigmaSq2, "sigma-sq2", 0, "known population variance, sample 2")
	cmd.Flags().Float64Var(&sigmaSq0, "sigma-sq0", 0, "hypothesized population variance")
	cmd.Flags().Float64Var(&p0, "p0", 0, "hypothesized proportion")
	cmd.Flags().IntVar(&successes1, "successes1", 0, "sample 1 success count")
	cmd.Flags().IntVar(&trials1, "trials1", 0, "sample 1 trial count")
	cmd.Flags().Float64Var(&phat1, "phat1", 0, "sample 1 observed proportion (alternative to --successes1)")
	cmd.Flags().IntVar(&successes2, "successes2", 0, "sample 2 success count")
	cmd.Flags().IntVar(&trials2, "trials2", 0, "sample 2 trial count")
	cmd.Flags().Float64Var(&phat2, "phat2", 0, "sample 2 observed proportion (alternative to --successes2)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the result as JSON")

	return cmd
}

// sampleFromFlags prefers raw data over summary flags; returns nil when
// neither was supplied so required-input checks fire downstream.
func sampleFromFlags(dataSpec string, mean, stddev float64, n int) (*hypotest.SampleInput, error) {
	if dataSpec != "" {
		obs, err := parseObservationSpec(dataSpec)
		if err != nil {
			return nil, err
		}
		in := hypotest.RawSampleInput(obs)
		return &in, nil
	}
	if n > 0 {
		in := hypotest.SummaryInput(mean, stddev, n)
		return &in, nil
	}
	return nil, nil
}

func proportionFromFlags(cmd *cobra.Command, countFlag string, successes, trials int, phat float64) *hypotest.ProportionObservation {
	if trials <= 0 {
		return nil
	}
	var obs hypotest.ProportionObservation
	if cmd.Flags().Changed(countFlag) {
		obs = hypotest.NewProportionFromCounts(successes, trials)
	} else {
		obs = hypotest.NewProportionDirect(phat, trials)
	}
	return &obs
}
