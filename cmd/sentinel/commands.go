package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"unicode"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"TrendSentinel/internal/api"
	"TrendSentinel/internal/config"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/notifier"
	"TrendSentinel/internal/scheduler"
	"TrendSentinel/internal/session"
)

func newServeCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP session API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg())
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a := newApp(cfg, reg)
	defer a.Close()

	sessions := session.NewRegistry(a.limits())
	sched := scheduler.NewScheduler(sessions, a.metrics, cfg.Session.IdleTTL)
	if err := sched.RegisterAll(cfg.Session.JanitorCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	srv := api.NewServer(
		api.NewHandler(sessions, a.crash, a.roulette, a.metrics),
		api.WithAddr(cfg.Server.Addr),
		api.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		api.WithMetrics(metricsPath, reg),
	)
	errc := srv.Start()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("predictor", cfg.Crash.Predictor).Msg("TrendSentinel is running. Press Ctrl+C to stop.")
	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received, stopping...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func newCrashCmd(cfg func() *config.Config) *cobra.Command {
	var (
		values string
		forest bool
	)
	cmd := &cobra.Command{
		Use:   "crash",
		Short: "Predict the next crash multiplier from a list of values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cfg()
			if forest {
				c.Crash.Predictor = "forest"
				c.Crash.Change.Strict = true
			}
			a := newApp(c, nil)
			defer a.Close()

			s, err := session.New(model.VariantCrash, a.limits())
			if err != nil {
				return err
			}
			for _, v := range splitValues(values) {
				if _, err := a.crash.AddObservation(s, v); err != nil {
					return err
				}
			}
			rep, err := a.crash.Predict(s)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), notifier.FormatCrashReport(rep))
			return nil
		},
	}
	cmd.Flags().StringVar(&values, "values", "", "Multipliers separated by commas or spaces, oldest first")
	cmd.Flags().BoolVar(&forest, "forest", false, "Use the random-forest predictor and the strict change detector")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func newRouletteCmd(cfg func() *config.Config) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "roulette",
		Short: "Forecast every market of the next spin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp(cfg(), nil)
			defer a.Close()

			s, err := rouletteSession(a, input)
			if err != nil {
				return err
			}
			fc, err := a.roulette.Predict(s)
			if err != nil {
				return err
			}
			trends, err := a.roulette.ShortTrend(s)
			if err != nil {
				return err
			}
			st, err := a.roulette.Stats(s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Forecast")
			fmt.Fprint(out, notifier.FormatForecast(fc))
			fmt.Fprintln(out, "\nShort-window trends")
			fmt.Fprint(out, notifier.FormatShortTrends(trends))
			fmt.Fprintln(out, "\nStatistics")
			fmt.Fprint(out, notifier.FormatStats(st))
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Results 0-36 separated by commas, spaces or newlines")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newSimulateCmd(cfg func() *config.Config) *cobra.Command {
	var input, balance, stake, target, policy string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a colour betting strategy over roulette results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp(cfg(), nil)
			defer a.Close()

			initial, err := decimal.NewFromString(balance)
			if err != nil {
				return fmt.Errorf("--balance: %w", err)
			}
			base, err := decimal.NewFromString(stake)
			if err != nil {
				return fmt.Errorf("--stake: %w", err)
			}
			s, err := rouletteSession(a, input)
			if err != nil {
				return err
			}
			p := model.SimulationParams{
				InitialBalance: initial,
				BaseStake:      base,
				Target:         target,
				Policy:         model.StakingPolicy(strings.ToLower(policy)),
			}
			res, err := a.roulette.SimulateStrategy(s, p)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), notifier.FormatSimulation(p, res))
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Results 0-36 separated by commas, spaces or newlines")
	cmd.Flags().StringVar(&balance, "balance", "1000", "Initial balance")
	cmd.Flags().StringVar(&stake, "stake", "10", "Base stake")
	cmd.Flags().StringVar(&target, "target", "Red", "Colour to bet on (Red, Black)")
	cmd.Flags().StringVar(&policy, "policy", "flat", "Staking policy (flat, martingale)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func rouletteSession(a *app, input string) (*session.Session, error) {
	s, err := session.New(model.VariantRoulette, a.limits())
	if err != nil {
		return nil, err
	}
	if _, err := a.roulette.AddObservations(s, input); err != nil {
		return nil, err
	}
	return s, nil
}

func splitValues(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
}
