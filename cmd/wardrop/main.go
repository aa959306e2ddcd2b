// Command wardrop equilibrates a TNTP network from the command line and
// writes the resulting link flows, optionally alongside convergence
// diagnostics as CSV or an HTML chart.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wardrop/assign"
	"github.com/katalvlaran/wardrop/costfn"
	"github.com/katalvlaran/wardrop/gaps"
	"github.com/katalvlaran/wardrop/network"
	"github.com/katalvlaran/wardrop/tntp"
)

// config carries every tunable of a solve. A YAML file supplies
// defaults; explicitly set flags win over the file.
type config struct {
	Algorithm     string        `yaml:"algorithm"`
	CostFunction  string        `yaml:"cost_function"`
	Accuracy      float64       `yaml:"accuracy"`
	MaxIterations int           `yaml:"max_iterations"`
	MaxRunTime    time.Duration `yaml:"max_run_time"`
	StepSize      float64       `yaml:"step_size"`
	SystemOptimal bool          `yaml:"system_optimal"`
	NetFile       string        `yaml:"net_file"`
	DemandFile    string        `yaml:"demand_file"`
	OutFile       string        `yaml:"out_file"`
	GapsCSV       string        `yaml:"gaps_csv"`
	GapsHTML      string        `yaml:"gaps_html"`
	Verbose       bool          `yaml:"verbose"`
}

func defaultConfig() config {
	return config{
		Algorithm:     assign.FW.String(),
		CostFunction:  costfn.NameBPR,
		Accuracy:      assign.DefaultAccuracy,
		MaxIterations: assign.DefaultMaxIterations,
		MaxRunTime:    assign.DefaultMaxRunTime,
		StepSize:      assign.DefaultStepSize,
	}
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("assignment failed", zap.Error(err))
		os.Exit(1)
	}
}

// parseConfig merges the built-in defaults, the optional YAML file and
// the command-line flags, in that order of increasing precedence.
func parseConfig(args []string) (config, error) {
	cfg := defaultConfig()

	fs := flag.NewFlagSet("wardrop", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file supplying defaults")
	fs.StringVar(&cfg.Algorithm, "algorithm", cfg.Algorithm, "solver: MSA, FW, CFW, GP or GP-E")
	fs.StringVar(&cfg.CostFunction, "cost", cfg.CostFunction, "volume-delay function: bpr, constant or greenshields")
	fs.Float64Var(&cfg.Accuracy, "accuracy", cfg.Accuracy, "relative-gap convergence threshold")
	fs.IntVar(&cfg.MaxIterations, "max-iter", cfg.MaxIterations, "iteration budget")
	fs.DurationVar(&cfg.MaxRunTime, "max-time", cfg.MaxRunTime, "wall-clock budget")
	fs.Float64Var(&cfg.StepSize, "step-size", cfg.StepSize, "fixed gradient-projection step")
	fs.BoolVar(&cfg.SystemOptimal, "system-optimal", cfg.SystemOptimal, "route against marginal cost")
	fs.StringVar(&cfg.NetFile, "net", cfg.NetFile, "TNTP network file (required)")
	fs.StringVar(&cfg.DemandFile, "demand", cfg.DemandFile, "TNTP trip file (derived from -net when empty)")
	fs.StringVar(&cfg.OutFile, "out", cfg.OutFile, "result file (derived from -net when empty)")
	fs.StringVar(&cfg.GapsCSV, "gaps-csv", cfg.GapsCSV, "write per-iteration gaps as CSV")
	fs.StringVar(&cfg.GapsHTML, "gaps-html", cfg.GapsHTML, "render per-iteration gaps as an HTML chart")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "per-iteration logging")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if *configPath != "" {
		if err := loadYAML(*configPath, &cfg); err != nil {
			return config{}, err
		}
		// Flags given explicitly on the command line keep precedence
		// over the file.
		if err := fs.Parse(args); err != nil {
			return config{}, err
		}
	}

	if cfg.NetFile == "" {
		return config{}, fmt.Errorf("wardrop: -net is required")
	}

	return cfg, nil
}

func loadYAML(path string, cfg *config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("wardrop: read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("wardrop: parse config: %w", err)
	}

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func run(cfg config, logger *zap.Logger) error {
	algo, err := assign.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return err
	}
	cost, err := costfn.ByName(cfg.CostFunction)
	if err != nil {
		return err
	}

	net, err := tntp.Load(cfg.NetFile, cfg.DemandFile)
	if err != nil {
		return err
	}
	logger.Info("network loaded",
		zap.String("net", cfg.NetFile),
		zap.Int("nodes", net.NodeCount()),
		zap.Int("links", net.LinkCount()),
		zap.Int("od_pairs", net.TripCount()),
		zap.Float64("total_demand", net.TotalDemand()),
	)

	rec := gaps.NewRecorder()
	opts := []assign.Option{
		assign.WithAlgorithm(algo),
		assign.WithCostFunction(cost),
		assign.WithAccuracy(cfg.Accuracy),
		assign.WithMaxIterations(cfg.MaxIterations),
		assign.WithMaxRunTime(cfg.MaxRunTime),
		assign.WithStepSize(cfg.StepSize),
		assign.WithLogger(logger),
		assign.WithGapRecorder(rec.Record),
	}
	if cfg.SystemOptimal {
		opts = append(opts, assign.WithSystemOptimal())
	}
	if cfg.Verbose {
		opts = append(opts, assign.WithVerbose())
	}

	res, err := assign.Run(net, opts...)
	if err != nil {
		return err
	}
	logger.Info("assignment finished",
		zap.Bool("converged", res.Converged),
		zap.Int("iterations", res.Iterations),
		zap.Duration("elapsed", res.Elapsed),
		zap.Float64("gap", res.Gap),
		zap.Float64("tstt", res.TSTT),
	)

	outFile := cfg.OutFile
	if outFile == "" {
		outFile = defaultOutPath(cfg.NetFile)
	}
	if err := writeFlows(outFile, net, cost, cfg.CostFunction, cfg.SystemOptimal); err != nil {
		return err
	}
	logger.Info("flows written", zap.String("file", outFile))

	if cfg.GapsCSV != "" {
		if err := writeGapsCSV(cfg.GapsCSV, rec); err != nil {
			return err
		}
		logger.Info("gaps written", zap.String("file", cfg.GapsCSV))
	}
	if cfg.GapsHTML != "" {
		if err := rec.RenderToFile(cfg.GapsHTML); err != nil {
			return err
		}
		logger.Info("gap chart rendered", zap.String("file", cfg.GapsHTML+".html"))
	}

	return nil
}

// defaultOutPath mirrors the trip-file convention: the last
// underscore-separated segment of the network path is replaced with
// "flow.tntp".
func defaultOutPath(netPath string) string {
	idx := strings.LastIndex(netPath, "_")
	if idx < 0 {
		return "flow.tntp"
	}

	return netPath[:idx] + "_flow.tntp"
}

func writeFlows(path string, net *network.Network, cost costfn.Func, costName string, systemOptimal bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wardrop: create result file: %w", err)
	}
	defer f.Close()

	return tntp.WriteFlows(f, net, cost, costName, systemOptimal)
}

func writeGapsCSV(path string, rec *gaps.Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wardrop: create gaps file: %w", err)
	}
	defer f.Close()

	return rec.WriteCSV(f)
}
