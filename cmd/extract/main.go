package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"voice-task-management/config"
	"voice-task-management/internal/extraction"
	"voice-task-management/internal/extraction/contract"
	extractionUC "voice-task-management/internal/extraction/usecase"
	"voice-task-management/pkg/datemath"
	"voice-task-management/pkg/llmprovider"
	"voice-task-management/pkg/log"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

type options struct {
	contractPath string
	reference    string
	timeout      time.Duration
	verbose      bool
}

func newRootCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "extract [utterance]",
		Short: "Extract a structured task draft from an utterance",
		Long: "Runs the extraction pipeline against the configured text-generation backend and prints the " +
			"draft as JSON. The utterance is read from the arguments, or from stdin when none are given.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			utterance := strings.Join(args, " ")
			if utterance == "" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				utterance = string(b)
			}
			return run(cmd.Context(), cmd.OutOrStdout(), utterance, opts)
		},
	}
	cmd.Flags().StringVar(&opts.contractPath, "contract", "", "Contract YAML file (overrides extraction.contract_path)")
	cmd.Flags().StringVar(&opts.reference, "reference", "", "Reference timestamp for relative dates (RFC3339, default now)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Backend call timeout (default extraction.timeout)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log pipeline stages to stderr")
	return cmd
}

func run(ctx context.Context, out io.Writer, utterance string, opts options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := log.NewNop()
	if opts.verbose {
		logger = log.Init(log.ZapConfig{Level: "debug", Mode: "debug", Encoding: "console"})
	}

	path := cfg.Extraction.ContractPath
	if opts.contractPath != "" {
		path = opts.contractPath
	}
	var c *contract.Contract
	if path != "" {
		c, err = contract.Load(path)
	} else {
		c, err = contract.Default()
	}
	if err != nil {
		return err
	}

	dates, err := datemath.NewParser(cfg.Extraction.Timezone)
	if err != nil {
		return fmt.Errorf("extraction.timezone: %w", err)
	}

	var ref time.Time
	if opts.reference != "" {
		if ref, err = time.Parse(time.RFC3339, opts.reference); err != nil {
			return fmt.Errorf("--reference: %w", err)
		}
	}

	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		return err
	}
	managerCfg, err := llmprovider.NewManagerConfig(&cfg.LLM)
	if err != nil {
		return err
	}

	defaultTimeout, err := time.ParseDuration(cfg.Extraction.Timeout)
	if err != nil {
		defaultTimeout = extractionUC.DefaultTimeout
	}
	uc, err := extractionUC.New(logger, llmprovider.NewManager(providers, managerCfg, logger), c, dates, defaultTimeout)
	if err != nil {
		return err
	}

	draft, err := uc.Extract(ctx, extraction.ExtractInput{
		Utterance:     utterance,
		ReferenceTime: ref,
		Timeout:       opts.timeout,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(draft)
}

// exitCode distinguishes caller mistakes (2) from backend failures (3).
func exitCode(err error) int {
	switch {
	case errors.Is(err, extraction.ErrEmptyInput):
		return 2
	case errors.Is(err, extraction.ErrBackendTimeout),
		errors.Is(err, extraction.ErrBackendUnavailable),
		errors.Is(err, extraction.ErrMalformedOutput),
		errors.Is(err, extraction.ErrSchemaMismatch),
		errors.Is(err, extraction.ErrValidation):
		return 3
	default:
		return 1
	}
}
