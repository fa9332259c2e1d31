package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	segal "github.com/SoniEx2/SEGAL"
	"github.com/SoniEx2/SEGAL/internal/logging"
	"github.com/SoniEx2/SEGAL/internal/metrics"
)

const (
	StrategyHistory = "history"
	StrategyPush    = "push"

	EnvPrefix = "SEGAL"
)

// windowOptions are the resolved settings of the window command.
type windowOptions struct {
	WindowSize  int    `mapstructure:"window-size"`
	Step        int    `mapstructure:"step"`
	Strategy    string `mapstructure:"strategy"`
	Chunk       int    `mapstructure:"chunk"`
	Capacity    int    `mapstructure:"capacity"`
	Input       string `mapstructure:"input"`
	DumpMetrics bool   `mapstructure:"dump-metrics"`

	StatsInterval time.Duration `mapstructure:"stats-interval"`
}

func NewWindowCommand() *cobra.Command {
	var configFile string

	command := &cobra.Command{
		Use:           "window",
		SilenceUsage:  true,
		SilenceErrors: true,
		Short:         "Window a stream of samples read from stdin or a file",
		Long: `Reads whitespace separated samples and writes one sliding window per line.

Settings come from flags, SEGAL_* environment variables (e.g. SEGAL_WINDOW_SIZE)
and an optional YAML config file, in that order of precedence.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadWindowOptions(cmd, configFile)
			if err != nil {
				return err
			}

			log := logging.NewLogger().Named("window")
			defer func() { _ = log.Sync() }()

			block, err := newBlock(opts.Strategy, segal.Config{WindowSize: opts.WindowSize, Step: opts.Step})
			if err != nil {
				return err
			}
			md := block.Metadata()
			log.Infow("Starting window stream",
				"strategy", opts.Strategy,
				"windowSize", opts.WindowSize,
				"step", opts.Step,
				"relativeRate", md.RelativeRate.String(),
				"history", md.History)

			in := cmd.InOrStdin()
			if opts.Input != "" && opts.Input != "-" {
				f, err := os.Open(opts.Input)
				if err != nil {
					return fmt.Errorf("failed to open input, %w", err)
				}
				defer f.Close()
				in = f
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = logging.WithLogger(ctx, log)

			stream := segal.NewWindowStream(block, segal.WithCapacity(opts.Capacity))
			err = runWindow(ctx, stream, in, cmd.OutOrStdout(), opts.Chunk, logWindowStats(log), opts.StatsInterval)
			if err != nil {
				return err
			}

			if opts.DumpMetrics {
				return dumpMetrics(cmd.ErrOrStderr())
			}
			return nil
		},
	}

	command.Flags().StringVar(&configFile, "config", "", "Path to a YAML config file")
	command.Flags().Int("window-size", segal.DefaultWindowSize, "Number of samples per window")
	command.Flags().Int("step", segal.DefaultStep, "Samples between the starts of consecutive windows")
	command.Flags().String("strategy", StrategyHistory, "Buffering strategy, 'history' or 'push'")
	command.Flags().Int("chunk", 1024, "Number of samples handed to the block per input chunk")
	command.Flags().Int("capacity", segal.DefaultStreamCapacity, "Windows requested per Work call")
	command.Flags().String("input", "", "Input file, stdin if empty or '-'")
	command.Flags().Duration("stats-interval", 0, "Log window throughput at this interval, disabled if 0")
	command.Flags().Bool("dump-metrics", false, "Write collected metrics to stderr when done")
	return command
}

func loadWindowOptions(cmd *cobra.Command, configFile string) (*windowOptions, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags, %w", err)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load configuration file, %w", err)
		}
	}

	opts := &windowOptions{}
	if err := v.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("unable to decode options, %w", err)
	}
	if opts.Chunk < 1 {
		return nil, fmt.Errorf("invalid chunk size %d", opts.Chunk)
	}
	return opts, nil
}

func newBlock(strategy string, cfg segal.Config) (segal.Block, error) {
	switch strategy {
	case StrategyHistory:
		return segal.NewHistoryWindow(cfg)
	case StrategyPush:
		return segal.NewPushWindow(cfg)
	default:
		return nil, fmt.Errorf("unsupported strategy %q", strategy)
	}
}

// runWindow feeds samples from r through stream and writes every window
// to w as one line. Windows produced before a read error are still written.
func runWindow(ctx context.Context, stream *segal.WindowStream, r io.Reader, w io.Writer, chunk int, onStats func(segal.WindowStats), statsInterval time.Duration) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	samples := make(chan float32)
	readErr := make(chan error, 1)
	go func() {
		defer close(samples)
		readErr <- readSamples(ctx, r, samples)
	}()

	windows := stream.Process(ctx, segal.NewChunk[float32](chunk).Process(ctx, samples))
	if onStats != nil && statsInterval > 0 {
		windows = segal.NewWindowMonitor(statsInterval, onStats, segal.RealClock).Process(ctx, windows)
	}

	bw := bufio.NewWriter(w)
	defer func() {
		if flushErr := bw.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("failed to write window, %w", flushErr)
		}
	}()

	var writeErr error
	for window := range windows {
		if writeErr != nil {
			continue
		}
		if writeErr = writeWindow(bw, window); writeErr != nil {
			cancel()
		}
	}

	if err := <-readErr; err != nil {
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("failed to write window, %w", writeErr)
	}
	return ctx.Err()
}

func readSamples(ctx context.Context, r io.Reader, samples chan<- float32) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		v, err := strconv.ParseFloat(scanner.Text(), 32)
		if err != nil {
			return fmt.Errorf("invalid sample %q, %w", scanner.Text(), err)
		}
		select {
		case samples <- float32(v):
		case <-ctx.Done():
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read samples, %w", err)
	}
	return nil
}

// logWindowStats returns a WindowMonitor callback that logs each report.
func logWindowStats(log *zap.SugaredLogger) func(segal.WindowStats) {
	return func(s segal.WindowStats) {
		log.Infow("Window stream stats",
			"windows", s.Windows,
			"samples", s.Samples,
			"rate", s.Rate)
	}
}

func writeWindow(w *bufio.Writer, window []float32) error {
	for i, v := range window {
		if i > 0 {
			if err := w.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func dumpMetrics(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics, %w", err)
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), metrics.Namespace+"_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics, %w", err)
		}
	}
	return nil
}
