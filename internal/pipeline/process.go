package pipeline

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"itemgen/internal"
	"itemgen/internal/config"
	"itemgen/internal/loader"
	"itemgen/internal/storage"
)

const (
	metaLastRun         = "generate.last_run"
	metaLastFingerprint = "generate.last_fingerprint"
)

type Inputs struct {
	EnumsPath    string
	ItemDataPath string
	MessagesPath string
	OutputPath   string
}

func InputsFromConfig(cfg config.Config) Inputs {
	return Inputs{
		EnumsPath:    cfg.EnumsPath,
		ItemDataPath: cfg.ItemDataPath,
		MessagesPath: cfg.MessagesPath,
		OutputPath:   cfg.OutputPath,
	}
}

type GenerateResult struct {
	RunID       int64
	Items       []internal.ParsedItem
	Warnings    []internal.Warning
	OutputPath  string
	Fingerprint string
}

type GenerateService struct {
	db  *storage.DB
	cfg config.Config
	out io.Writer
}

// NewGenerateService records runs in db when it is non-nil.
func NewGenerateService(db *storage.DB, cfg config.Config, out io.Writer) *GenerateService {
	if out == nil {
		out = os.Stdout
	}
	return &GenerateService{db: db, cfg: cfg, out: out}
}

func (s *GenerateService) Generate(ctx context.Context, in Inputs) (GenerateResult, error) {
	start := time.Now()

	fmt.Fprintf(s.out, "Loading %s...\n", in.EnumsPath)
	labels, err := loader.LoadLabelIDs(in.EnumsPath, s.cfg.EnumNamespace)
	if err != nil {
		return GenerateResult{}, err
	}

	fmt.Fprintf(s.out, "Loading %s...\n", in.ItemDataPath)
	entries, err := loader.LoadItemEntries(in.ItemDataPath)
	if err != nil {
		return GenerateResult{}, err
	}

	fmt.Fprintf(s.out, "Loading %s...\n", in.MessagesPath)
	messages, err := loader.LoadLocalization(in.MessagesPath)
	if err != nil {
		return GenerateResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return GenerateResult{}, err
	}

	merged := NewMerger(labels, messages, s.cfg.SuggestLabels).Merge(entries)
	for _, w := range merged.Warnings {
		fmt.Fprintln(s.out, w.String())
	}

	fingerprint, err := FingerprintInputs(in)
	if err != nil {
		return GenerateResult{}, err
	}

	if err := WriteItemsJSON(merged.Items, in.OutputPath); err != nil {
		return GenerateResult{}, err
	}

	result := GenerateResult{
		Items:       merged.Items,
		Warnings:    merged.Warnings,
		OutputPath:  in.OutputPath,
		Fingerprint: fingerprint,
	}

	if s.db != nil {
		run := internal.RunRecord{
			TraceID:     traceID(),
			Fingerprint: fingerprint,
			OutputPath:  in.OutputPath,
			DurationMs:  float64(time.Since(start).Milliseconds()),
		}
		s.recordHistory(run, &result)
	}

	fmt.Fprintf(s.out, "Generated %d items to %s\n", len(merged.Items), in.OutputPath)
	return result, nil
}

// recordHistory never fails the run: the asset is already written.
func (s *GenerateService) recordHistory(run internal.RunRecord, result *GenerateResult) {
	runID, err := s.db.RecordRun(run, result.Items, result.Warnings)
	if err != nil {
		fmt.Fprintf(s.out, "Warning: run history not recorded: %v\n", err)
		return
	}
	result.RunID = runID
	if err := s.db.SetMetadata(metaLastRun, time.Now().UTC().Format(time.RFC3339)); err != nil {
		fmt.Fprintf(s.out, "Warning: run history metadata %s not saved: %v\n", metaLastRun, err)
	}
	if err := s.db.SetMetadata(metaLastFingerprint, result.Fingerprint); err != nil {
		fmt.Fprintf(s.out, "Warning: run history metadata %s not saved: %v\n", metaLastFingerprint, err)
	}
}

// LastFingerprint is empty when nothing has been generated yet.
func (s *GenerateService) LastFingerprint() (string, error) {
	if s.db == nil {
		return "", nil
	}
	v, err := s.db.GetMetadata(metaLastFingerprint)
	if err != nil || v == nil {
		return "", err
	}
	return *v, nil
}

// FingerprintInputs hashes the three input files so unchanged inputs can be detected.
func FingerprintInputs(in Inputs) (string, error) {
	h := sha256.New()
	for _, path := range []string{in.EnumsPath, in.ItemDataPath, in.MessagesPath} {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		_, err = io.Copy(h, f)
		_ = f.Close()
		if err != nil {
			return "", err
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
