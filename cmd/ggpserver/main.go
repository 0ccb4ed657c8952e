// Ggpserver runs a GGP player as an HTTP service speaking the wire
// protocol over POST "/". One subcommand selects the search strategy that
// drives every match the process accepts; --port, --log, and --seed are
// shared across all of them.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dekarrin/rosed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dekarrin/ggpagent/internal/player"
	"github.com/dekarrin/ggpagent/internal/search"
	"github.com/dekarrin/ggpagent/server"
	"github.com/dekarrin/ggpagent/server/match"
)

var (
	flagPort int
	flagLog  string
	flagSeed int64
)

var rootCmd = &cobra.Command{
	Use:   "ggpserver",
	Short: "Run a General Game Playing agent as an HTTP service",
	Long: rosed.Edit(
		"ggpserver listens for the five General Game Playing wire messages "+
			"(info, start, play, stop, abort) on a single HTTP endpoint and "+
			"answers every match with the search strategy named by the "+
			"subcommand invoked. Exactly one match may be in progress at a "+
			"time; a second (start) while one is running is rejected.").
		Wrap(80).String(),
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagPort, "port", 9147, "port to listen on; scans forward up to 100 ports if occupied")
	rootCmd.PersistentFlags().StringVar(&flagLog, "log", "info", "log level: debug, info, warning, error, critical, or an integer")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for the player; 0 derives a seed from the current time")

	rootCmd.AddCommand(
		playerCmd("Legal", "Always plays the first legal action.", noArgFactory(func(base *player.Base) player.Player {
			return search.NewLegal(base)
		})),
		playerCmd("Random", "Plays a uniformly random legal action.", noArgFactory(func(base *player.Base) player.Player {
			return search.NewRandom(base)
		})),
		playerCmd("CompulsiveDeliberation", "Single-player full-tree search maximizing utility.", func(base *player.Base) (player.Player, error) {
			return search.NewCompulsiveDeliberation(base)
		}),
		playerCmd("SequentialPlanner", "Single-player STRIPS-style forward planner.", func(base *player.Base) (player.Player, error) {
			return search.NewSequentialPlanner(base)
		}),
		playerCmd("Minimax", "Full-tree minimax for two-player zero-sum games.", noArgFactory(func(base *player.Base) player.Player {
			return search.NewMinimax(base)
		})),
		playerCmd("AlphaBeta", "Full-tree minimax with alpha-beta pruning.", noArgFactory(func(base *player.Base) player.Player {
			return search.NewAlphaBeta(base)
		})),
		boundedDepthCmd(),
		monteCarloCmd(),
		monteCarloTreeSearchCmd(),
	)
}

// playerFactory adapts a concrete constructor to match.PlayerFactory.
type playerFactory func(base *player.Base) (player.Player, error)

func noArgFactory(ctor func(base *player.Base) player.Player) playerFactory {
	return func(base *player.Base) (player.Player, error) {
		return ctor(base), nil
	}
}

func playerCmd(name, short string, factory playerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(name, match.PlayerFactory(factory))
		},
	}
}

func boundedDepthCmd() *cobra.Command {
	var maxDepth int
	var heuristicName string

	cmd := &cobra.Command{
		Use:   "BoundedDepth",
		Short: "Alpha-beta search cut off at a fixed depth with a frontier heuristic.",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := parseHeuristic(heuristicName)
			if err != nil {
				return err
			}
			factory := func(base *player.Base) (player.Player, error) {
				return search.NewBoundedDepth(base, maxDepth, h), nil
			}
			return runServer("BoundedDepth", match.PlayerFactory(factory))
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max_depth", 4, "ply depth to search before evaluating with the heuristic; -1 for iterative deepening")
	cmd.Flags().StringVar(&heuristicName, "heuristic", "zero", "frontier heuristic: zero, utility, or mobility")
	return cmd
}

func monteCarloCmd() *cobra.Command {
	var maxDepth, numProbes int

	cmd := &cobra.Command{
		Use:   "MonteCarlo",
		Short: "Bounded-depth search evaluating frontier nodes by random playout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			factory := func(base *player.Base) (player.Player, error) {
				return search.NewMonteCarlo(base, maxDepth, numProbes), nil
			}
			return runServer("MonteCarlo", match.PlayerFactory(factory))
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max_depth", 4, "ply depth to search before evaluating by random playout; -1 for iterative deepening")
	cmd.Flags().IntVar(&numProbes, "num_probes", 8, "number of random playouts averaged per frontier node")
	return cmd
}

func monteCarloTreeSearchCmd() *cobra.Command {
	var c float64

	cmd := &cobra.Command{
		Use:   "MonteCarloTreeSearch",
		Short: "UCT Monte Carlo tree search.",
		RunE: func(cmd *cobra.Command, args []string) error {
			factory := func(base *player.Base) (player.Player, error) {
				return search.NewMCTSWithC(base, c)
			}
			return runServer("MonteCarloTreeSearch", match.PlayerFactory(factory))
		},
	}
	cmd.Flags().Float64Var(&c, "C", search.DefaultExplorationConstant, "UCT exploration constant")
	return cmd
}

func parseHeuristic(name string) (search.Heuristic, error) {
	switch name {
	case "zero":
		return search.HeuristicZero, nil
	case "utility":
		return search.HeuristicUtility, nil
	case "mobility":
		return search.HeuristicMobility, nil
	default:
		return 0, fmt.Errorf("unknown heuristic %q", name)
	}
}

// parseLogLevel accepts debug/info/warning/error/critical, or a raw
// zapcore.Level integer.
func parseLogLevel(s string) (zapcore.Level, error) {
	switch s {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "critical":
		return zapcore.FatalLevel, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return zapcore.Level(n), nil
	}
	return 0, fmt.Errorf("unrecognized log level %q", s)
}

func runServer(playerName string, factory match.PlayerFactory) error {
	level, err := parseLogLevel(flagLog)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	svcCfg := server.Config{Port: flagPort, LogLevel: flagLog, Seed: seed}.FillDefaults()

	reg := match.NewRegistry()
	svc := match.NewService(reg, factory, svcCfg.Seed, log)
	srv := server.New(playerName, svc, log)

	ln, port, err := server.ListenPort(svcCfg)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	log.Info("ggpserver listening", zap.String("player", playerName), zap.Int("port", port))

	httpSrv := &http.Server{Handler: srv}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
		return httpSrv.Close()
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
