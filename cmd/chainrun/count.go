package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ib-77/ropchain/internal/textsteps"
	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/chain"
	"github.com/ib-77/ropchain/pkg/rop/core"
	"github.com/ib-77/ropchain/pkg/rop/lite"
	"github.com/ib-77/ropchain/pkg/rop/mass"
	"github.com/ib-77/ropchain/pkg/rop/solo"
)

const (
	modeSync      = "sync"
	modeInline    = "inline"
	modeScheduled = "scheduled"
)

type countOptions struct {
	*rootOptions
	mode   string
	copies int
	config string
}

func newCountCmd(root *rootOptions) *cobra.Command {
	opts := &countOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "count FILE...",
		Short: "Count the bytes of each file through a ReadFile -> Counter chain",
		Long: `Reads every file with a ReadFile step and sums the content lengths in a
Counter step.

Modes:
  sync       run each chain on the calling goroutine
  inline     run each step on a worker pool, waiting for each one
  scheduled  submit to the two-pool scheduler; --copies fans every file
             out that many times before counting`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd.Context(), cmd.OutOrStdout(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", modeSync, "runner: sync, inline or scheduled")
	cmd.Flags().IntVar(&opts.copies, "copies", 1, "fan-out copies per file (scheduled mode only)")
	cmd.Flags().StringVar(&opts.config, "config", "", "scheduler yaml config")
	return cmd
}

func runCount(ctx context.Context, out io.Writer, opts *countOptions, files []string) error {
	if opts.copies < 1 {
		return fmt.Errorf("--copies must be at least 1, got %d", opts.copies)
	}
	if opts.copies > 1 && opts.mode != modeScheduled {
		return fmt.Errorf("--copies needs --mode %s", modeScheduled)
	}

	cfg := mass.DefaultConfig()
	if opts.config != "" {
		var err error
		if cfg, err = mass.LoadConfig(opts.config); err != nil {
			return err
		}
	}

	opts.log.Debug("counting", zap.String("mode", opts.mode), zap.Strings("files", files))

	switch opts.mode {
	case modeSync:
		return countEach(out, files, func(c *chain.Chain, path string) rop.Result[any] {
			return solo.Run(ctx, c.Head(), path)
		})

	case modeInline:
		pool := core.NewPool(cfg.ExecutionWorkers)
		defer pool.Shutdown()
		return countEach(out, files, func(c *chain.Chain, path string) rop.Result[any] {
			return lite.Run(ctx, pool, c.Head(), path)
		})

	case modeScheduled:
		return countScheduled(ctx, out, opts, cfg, files)

	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
}

func countEach(out io.Writer, files []string, run func(*chain.Chain, string) rop.Result[any]) error {
	var failures []error
	total := 0
	for _, path := range files {
		c := chain.Must(&textsteps.ReadFile{}, &textsteps.Counter{})

		res := rop.Cast[int](run(c, path))
		if !res.IsSuccess() {
			failures = append(failures, fmt.Errorf("%s: %w", path, res.Err()))
			continue
		}

		total += res.Result()
		fmt.Fprintf(out, "%s\t%d\n", path, res.Result())
	}
	if err := chainsFailed(errors.Join(failures...)); err != nil {
		return err
	}

	fmt.Fprintf(out, "total\t%d\n", total)
	return nil
}

// chainsFailed turns the joined failures of a run into one error that
// counts them, or nil when there are none.
func chainsFailed(joined error) error {
	errs := rop.GetErrors(joined)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%d chains failed: %w", len(errs), joined)
}

func countScheduled(ctx context.Context, out io.Writer, opts *countOptions, cfg mass.Config, files []string) error {
	var (
		mu       sync.Mutex
		failures []error
	)
	s, err := mass.NewFromConfig(cfg,
		mass.WithLogger(opts.log),
		mass.WithObserver(func(_ uuid.UUID, res rop.Result[any]) {
			if res.Err() == nil {
				return
			}
			mu.Lock()
			failures = append(failures, res.Err())
			mu.Unlock()
		}))
	if err != nil {
		return err
	}

	counter := &textsteps.Counter{}
	c := chain.Must(&textsteps.ReadCopies{Copies: opts.copies}, counter)

	for _, path := range files {
		if _, err := s.SubmitChain(c.Head(), path); err != nil {
			return errors.Join(err, s.Shutdown(0))
		}
	}

	drainErr := s.Drain(ctx)
	if err := errors.Join(drainErr, s.Shutdown(cfg.ShutdownTimeout)); err != nil {
		return err
	}
	if err := chainsFailed(errors.Join(failures...)); err != nil {
		return err
	}

	fmt.Fprintf(out, "total\t%d\n", counter.Total())
	return nil
}
