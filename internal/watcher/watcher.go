package watcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"itemgen/internal/config"
	"itemgen/internal/pipeline"
)

type Service struct {
	generator *pipeline.GenerateService
	inputs    pipeline.Inputs
	interval  time.Duration
	out       io.Writer

	lastFingerprint string
}

func NewService(generator *pipeline.GenerateService, cfg config.Config, inputs pipeline.Inputs, out io.Writer) *Service {
	interval := time.Duration(cfg.WatchIntervalSec) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	if out == nil {
		out = os.Stdout
	}
	return &Service{generator: generator, inputs: inputs, interval: interval, out: out}
}

func (s *Service) Run(ctx context.Context) error {
	last, err := s.generator.LastFingerprint()
	if err != nil {
		fmt.Fprintf(s.out, "Warning: last fingerprint unavailable, regenerating: %v\n", err)
	}
	s.lastFingerprint = last

	for {
		if _, err := s.runCycle(ctx); err != nil {
			fmt.Fprintf(s.out, "watch cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.interval):
		}
	}
}

// runCycle regenerates only when the input fingerprint differs from the last run.
func (s *Service) runCycle(ctx context.Context) (bool, error) {
	fingerprint, err := pipeline.FingerprintInputs(s.inputs)
	if err != nil {
		return false, err
	}
	if fingerprint == s.lastFingerprint {
		return false, nil
	}

	res, err := s.generator.Generate(ctx, s.inputs)
	if err != nil {
		return false, err
	}
	s.lastFingerprint = res.Fingerprint
	fmt.Fprintf(s.out, "watch cycle done items=%d warnings=%d fingerprint=%s\n", len(res.Items), len(res.Warnings), shortFingerprint(res.Fingerprint))
	return true, nil
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
