package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roach88/bindgen/internal/bindtests"
	"github.com/roach88/bindgen/internal/catalog"
	"github.com/roach88/bindgen/internal/checks"
	"github.com/roach88/bindgen/internal/compiler"
	"github.com/roach88/bindgen/internal/config"
	"github.com/roach88/bindgen/internal/docs"
	"github.com/roach88/bindgen/internal/emit"
	"github.com/roach88/bindgen/internal/ir"
	"github.com/roach88/bindgen/internal/output"
	"github.com/roach88/bindgen/internal/protocol"
	"github.com/roach88/bindgen/internal/store"
)

// LockName is the advisory lock file held in the output directory for the
// duration of a run. It is not a generated file.
const LockName = ".bindgen.lock"

// FileResult describes one planned output after the write phase.
type FileResult struct {
	Path    string `json:"path"`
	Lines   int    `json:"lines"`
	Changed bool   `json:"changed"`
}

// Result summarises a run.
type Result struct {
	RunID          string       `json:"run_id,omitempty"` // empty when the journal is disabled
	Fingerprint    string       `json:"fingerprint"`
	Targets        []string     `json:"targets"`
	Files          []FileResult `json:"files"`
	Stats          output.Stats `json:"stats"`
	DocCacheHits   int          `json:"doc_cache_hits"`
	DocCacheMisses int          `json:"doc_cache_misses"`
}

// LoadAPI returns the compiled-in API, merged with the CUE definitions in
// cfg.APIDir when one is configured. The result is not checked.
func LoadAPI(cfg config.Config) (*ir.API, error) {
	api := catalog.API()
	if cfg.APIDir == "" {
		return api, nil
	}
	r, err := compiler.LoadDir(cfg.APIDir)
	if err != nil {
		return nil, err
	}
	Logger().Debug("loaded CUE definitions",
		zap.String("dir", cfg.APIDir),
		zap.Int("files", r.FileCount),
		zap.Int("actions", len(r.Actions)),
		zap.Int("structs", len(r.Structs)))
	return compiler.Merge(api, r), nil
}

// Check loads the API and runs the consistency checks.
func Check(cfg config.Config) (*ir.API, error) {
	api, err := LoadAPI(cfg)
	if err != nil {
		return nil, err
	}
	if err := checks.Check(api); err != nil {
		return nil, err
	}
	return api, nil
}

// Plan computes every output file in memory. The manifest is last.
func Plan(api *ir.API, cfg config.Config, renderer docs.Renderer) ([]output.File, error) {
	ctx := &emit.Context{API: api, Docs: renderer, Width: cfg.DocWidth}
	if cfg.Bindtests {
		ctx.Bindtests = bindtests.Sequence()
	}

	var files []output.File
	headers := make(map[string]bool)
	for _, t := range cfg.ParsedTargets() {
		if hb, ok := emit.HeaderFor(t); ok && !headers[hb.HeaderFile()] {
			header, err := emit.Header(ctx, hb)
			if err != nil {
				return nil, err
			}
			headers[header.Path] = true
			files = append(files, header)
		}
		bindings, tests, err := emit.Visit(ctx, emit.BackendFor(t))
		if err != nil {
			return nil, err
		}
		Logger().Debug("planned target",
			zap.Stringer("target", t),
			zap.Int("binding_lines", bindings.Lines()),
			zap.Int("test_lines", tests.Lines()))
		files = append(files, bindings, tests)
	}

	xdr, err := protocol.Generate(api)
	if err != nil {
		return nil, err
	}
	files = append(files, xdr)

	if cfg.Bindtests {
		expected, err := bindtests.Expected(api, ctx.Bindtests)
		if err != nil {
			return nil, err
		}
		files = append(files, expected)
	}
	return append(files, output.Manifest(files)), nil
}

// Run performs a full generation run as described in the package doc.
func Run(ctx context.Context, cfg config.Config) (*Result, error) {
	api, err := Check(cfg)
	if err != nil {
		return nil, err
	}
	fingerprint, err := ir.Fingerprint(api)
	if err != nil {
		return nil, err
	}

	var st *store.Store
	if cfg.Store != "" {
		if st, err = openStore(cfg.Store); err != nil {
			return nil, err
		}
		defer st.Close()
	}

	cache := docs.NewCache(docs.TextRenderer{})
	if st != nil {
		if err := cache.Load(ctx, st); err != nil {
			return nil, err
		}
	}

	files, err := Plan(api, cfg, cache)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lock, err := output.Lock(filepath.Join(cfg.OutputDir, LockName))
	if err != nil {
		return nil, err
	}
	defer lock.Close()

	res := &Result{Fingerprint: fingerprint, Targets: cfg.Targets}
	records := make([]store.OutputRecord, 0, len(files))
	for _, f := range files {
		changed, err := output.WriteIfChanged(filepath.Join(cfg.OutputDir, filepath.FromSlash(f.Path)), f.Content)
		if err != nil {
			return nil, err
		}
		res.Stats.Record(f, changed)
		res.Files = append(res.Files, FileResult{Path: f.Path, Lines: f.Lines(), Changed: changed})
		sum := sha256.Sum256(f.Content)
		records = append(records, store.OutputRecord{
			Path:    f.Path,
			SHA256:  hex.EncodeToString(sum[:]),
			Lines:   f.Lines(),
			Changed: changed,
		})
		if changed {
			Logger().Debug("wrote", zap.String("path", f.Path))
		}
	}
	res.DocCacheHits, res.DocCacheMisses = cache.Stats()

	if st != nil {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("run id: %w", err)
		}
		res.RunID = id.String()
		run := store.Run{
			ID:               res.RunID,
			Fingerprint:      fingerprint,
			GeneratorVersion: ir.GeneratorVersion,
			Targets:          strings.Join(cfg.Targets, ","),
			FilesWritten:     res.Stats.FilesWritten,
			FilesUnchanged:   res.Stats.FilesUnchanged,
			Lines:            res.Stats.Lines,
		}
		if err := st.RecordRun(ctx, run, records); err != nil {
			return nil, err
		}
		if err := cache.Save(ctx, st); err != nil {
			return nil, err
		}
	}

	Logger().Info("generation complete",
		zap.String("run_id", res.RunID),
		zap.Int("written", res.Stats.FilesWritten),
		zap.Int("unchanged", res.Stats.FilesUnchanged),
		zap.Int("lines", res.Stats.Lines))
	return res, nil
}

// History returns up to limit journal entries, newest first.
func History(ctx context.Context, cfg config.Config, limit int) ([]store.Run, error) {
	if cfg.Store == "" {
		return nil, fmt.Errorf("history: no store configured")
	}
	st, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.Runs(ctx, limit)
}

// RunFiles returns the files journalled for one run, ordered by path.
func RunFiles(ctx context.Context, cfg config.Config, runID string) ([]store.OutputRecord, error) {
	if cfg.Store == "" {
		return nil, fmt.Errorf("history: no store configured")
	}
	st, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	files, err := st.RunOutputs(ctx, runID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("history: run %s not found", runID)
	}
	return files, nil
}

func openStore(path string) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return st, nil
}
