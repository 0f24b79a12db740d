package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/binderykit/bindery/pkg/errors"
	"github.com/binderykit/bindery/pkg/imposition"
	"github.com/binderykit/bindery/pkg/pdf"
	"github.com/binderykit/bindery/pkg/store"
)

// File kinds produced by a pipeline run.
const (
	KindBooklet   = "booklet"
	KindSignature = "signature"
	KindPreview   = "preview"
)

// OutputFile describes one generated artifact file.
type OutputFile struct {
	Kind      string
	Filename  string
	Path      string
	PageCount int
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Doc is the opened source document.
	Doc *pdf.Document

	// Signatures is the ordered page sequence split into signatures.
	Signatures []imposition.Signature

	// ArtifactID groups this run's files in the store.
	ArtifactID string

	// Files lists the generated artifacts in creation order.
	Files []OutputFile

	// Preview holds the first-sheet preview geometry when requested.
	Preview *pdf.PreviewResult

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SourcePages int
	TotalPages  int // Source pages plus flyleafs and padding blanks
	Sides       int
	ReadTime    time.Duration
	OrderTime   time.Duration
	WriteTime   time.Duration
}

// Runner encapsulates pipeline execution with artifact storage.
// Both CLI and web can use this to avoid duplicating storage logic.
//
// The Runner is stateless except for the store, index, and logger - it
// doesn't keep pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Store  store.Store
	Index  store.Index
	Logger *log.Logger
}

// NewRunner creates a runner with the given store and index.
// If s is nil, a NullStore is used (files land in temp directories).
// If idx is nil, a NullIndex is used (no recent listing).
func NewRunner(s store.Store, idx store.Index, logger *log.Logger) *Runner {
	if s == nil {
		s = store.NewNullStore()
	}
	if idx == nil {
		idx = store.NewNullIndex()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Store:  s,
		Index:  idx,
		Logger: logger,
	}
}

// Execute runs the complete read → order → write pipeline and stores the
// generated booklet files.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Read
	readStart := time.Now()
	doc, err := pdf.Open(opts.Source)
	if err != nil {
		return nil, err
	}
	result.Doc = doc
	result.Stats.ReadTime = time.Since(readStart)
	result.Stats.SourcePages = doc.PageCount

	r.Logger.Info("read source document",
		"file", opts.SourceName,
		"pages", doc.PageCount,
		"duration", result.Stats.ReadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Order
	orderStart := time.Now()
	sigs, err := r.Order(doc.PageCount, opts)
	if err != nil {
		return nil, err
	}
	result.Signatures = sigs
	result.Stats.OrderTime = time.Since(orderStart)
	for _, sig := range sigs {
		result.Stats.TotalPages += len(sig)
		result.Stats.Sides += len(sig) / 2
	}

	r.Logger.Info("ordered pages",
		"signatures", len(sigs),
		"pages", result.Stats.TotalPages,
		"sides", result.Stats.Sides,
		"duration", result.Stats.OrderTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Write
	writeStart := time.Now()
	if err := r.write(ctx, doc, sigs, opts, result); err != nil {
		return nil, err
	}
	result.Stats.WriteTime = time.Since(writeStart)

	r.Logger.Info("wrote booklet files",
		"files", len(result.Files),
		"mode", opts.OutputMode,
		"duration", result.Stats.WriteTime)

	if err := r.record(ctx, result); err != nil {
		// A broken index must not fail the run; the files exist.
		r.Logger.Warn("recording artifact metadata failed", "err", err)
	}

	return result, nil
}

// Order inserts flyleafs, pads to a multiple of four, and splits the page
// sequence into signatures for a document with pageCount pages.
func (r *Runner) Order(pageCount int, opts Options) ([]imposition.Signature, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	ordered, err := imposition.BuildOrderedPages(imposition.PageRange(pageCount), opts.Flyleafs)
	if err != nil {
		return nil, err
	}
	return imposition.SplitSignatures(ordered, opts.Sheets)
}

// write renders the selected output files into a fresh store entry.
func (r *Runner) write(ctx context.Context, doc *pdf.Document, sigs []imposition.Signature, opts Options, result *Result) error {
	planner, err := opts.Planner()
	if err != nil {
		return err
	}
	writer := pdf.NewWriter(planner, opts.Marks())

	create := func(filename string) (*store.Entry, error) {
		if result.ArtifactID == "" {
			entry, err := r.Store.Create(ctx, filename)
			if err != nil {
				return nil, err
			}
			result.ArtifactID = entry.ID
			return entry, nil
		}
		return r.Store.CreateIn(ctx, result.ArtifactID, filename)
	}

	if opts.WantsAggregated() {
		filename := pdf.OutputFilename(opts.SourceName)
		entry, err := create(filename)
		if err != nil {
			return err
		}
		res, err := writer.WriteBooklet(doc, sigs, opts.DuplexRotate, entry.Path)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, OutputFile{
			Kind:      KindBooklet,
			Filename:  filename,
			Path:      res.Path,
			PageCount: res.PageCount,
		})
	}

	if opts.WantsSignatures() {
		for i, sig := range sigs {
			if err := ctx.Err(); err != nil {
				return err
			}
			filename := pdf.SignatureFilename(opts.SourceName, i)
			entry, err := create(filename)
			if err != nil {
				return err
			}
			res, err := writer.WriteSignature(doc, sig, i, len(sigs), opts.DuplexRotate, entry.Path)
			if err != nil {
				return err
			}
			result.Files = append(result.Files, OutputFile{
				Kind:      KindSignature,
				Filename:  filename,
				Path:      res.Path,
				PageCount: res.PageCount,
			})
		}
	}

	if opts.Preview {
		filename := pdf.PreviewFilename(opts.SourceName)
		entry, err := create(filename)
		if err != nil {
			return err
		}
		preview, err := writer.WritePreview(doc, sigs, opts.DuplexRotate, entry.Path)
		if err != nil {
			return err
		}
		result.Preview = preview
		result.Files = append(result.Files, OutputFile{
			Kind:      KindPreview,
			Filename:  filename,
			Path:      preview.Path,
			PageCount: preview.PageCount,
		})
	}

	if len(result.Files) == 0 {
		return errors.New(errors.ErrCodeInternal, "pipeline produced no output files")
	}
	return nil
}

// record indexes the run's primary artifact for recent listings.
func (r *Runner) record(ctx context.Context, result *Result) error {
	primary := result.Files[0]
	return r.Index.Record(ctx, store.Artifact{
		ID:        result.ArtifactID,
		Filename:  primary.Filename,
		PageCount: primary.PageCount,
		CreatedAt: time.Now().UTC(),
	})
}

// Close releases resources held by the runner (store and index).
func (r *Runner) Close() error {
	var firstErr error
	if r.Store != nil {
		if err := r.Store.Close(); err != nil {
			firstErr = err
		}
	}
	if r.Index != nil {
		if err := r.Index.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
