package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/storelocator/internal/metaobject"
	"github.com/dmitrymomot/storelocator/pkg/normalize"
)

// SchemaName is the record type every import targets.
const SchemaName = "store_location"

// DefaultConcurrency bounds in-flight creates per batch. Kept small so one
// batch cannot exhaust the shop's API rate budget.
const DefaultConcurrency = 5

// dedupPageLimit is how many existing records are fetched for duplicate
// rejection before a batch runs.
const dedupPageLimit = 250

// Column labels in definition order. The first six are required per row; the
// rest default to empty string so the remote shape stays stable across
// partially filled rows.
var (
	FieldLabels    = []string{"Store Name", "Address", "City", "State", "ZIP", "Country", "Phone", "Email", "Hours", "Services"}
	requiredLabels = FieldLabels[:6]
)

// SchemaRegistry provisions the record-type definition before any row runs.
type SchemaRegistry interface {
	Exists(ctx context.Context, schemaName string) (bool, error)
	Ensure(ctx context.Context, schemaName string, fieldLabels []string) error
}

// RecordWriter creates one remote record per row.
type RecordWriter interface {
	Create(ctx context.Context, schemaName string, fields map[string]string, handle string) (string, error)
}

// RecordReader lists existing records for duplicate-handle rejection.
type RecordReader interface {
	List(ctx context.Context, schemaName string, pageLimit int) ([]metaobject.Record, error)
}

// Pipeline converts a parsed table into remote records with a precise
// partial-failure contract: row failures never abort sibling rows, and the
// outcome preserves input order.
type Pipeline struct {
	registry    SchemaRegistry
	writer      RecordWriter
	reader      RecordReader
	concurrency int
	log         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConcurrency overrides the create fan-out bound. Values below one are
// ignored.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n >= 1 {
			p.concurrency = n
		}
	}
}

// New creates an import pipeline over the given collaborators.
func New(registry SchemaRegistry, writer RecordWriter, reader RecordReader, log *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry:    registry,
		writer:      writer,
		reader:      reader,
		concurrency: DefaultConcurrency,
		log:         log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ImportBatch runs one batch. The schema is ensured before any row is
// attempted; a provisioning failure aborts the batch with ErrSchemaProvision
// and zero rows issued. Cancellation stops unissued rows, marks them as
// cancelled in the outcome, and returns the context error alongside the
// partial outcome; records created before cancellation stand.
func (p *Pipeline) ImportBatch(ctx context.Context, rows []Row) (*Outcome, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	batchID := uuid.New()
	log := p.log.With("batch_id", batchID)

	exists, err := p.registry.Exists(ctx, SchemaName)
	if err != nil {
		return nil, errors.Join(ErrSchemaProvision, err)
	}
	if !exists {
		if err := p.registry.Ensure(ctx, SchemaName, FieldLabels); err != nil {
			return nil, errors.Join(ErrSchemaProvision, err)
		}
	}

	existing, err := p.existingHandles(ctx)
	if err != nil {
		return nil, errors.Join(ErrHandleLookup, err)
	}

	results := make([]RowResult, len(rows))
	pending := p.validateRows(rows, existing, results)

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)
	for _, row := range pending {
		row := row
		g.Go(func() error {
			res := &results[row.index]
			if ctx.Err() != nil {
				res.Reason = ReasonCancelled
				res.Detail = "batch cancelled before row was attempted"
				return nil
			}

			id, err := p.writer.Create(ctx, SchemaName, row.fields, res.Handle)
			if err != nil {
				res.Reason = ReasonCreateFailed
				res.Detail = err.Error()
				return nil
			}
			res.Succeeded = true
			res.RecordID = id
			return nil
		})
	}
	// Workers never return errors; failures live in the per-row results.
	_ = g.Wait()

	outcome := summarize(batchID, results)
	log.InfoContext(ctx, "import batch finished",
		"status", outcome.Status,
		"succeeded", outcome.Succeeded,
		"failed", outcome.Failed,
	)

	if err := ctx.Err(); err != nil {
		return outcome, err
	}
	return outcome, nil
}

type pendingRow struct {
	index  int
	fields map[string]string
}

// validateRows fills results for structurally invalid and duplicate rows and
// returns the rows that still need a remote create. No network cost is paid
// for rows that cannot possibly succeed.
func (p *Pipeline) validateRows(rows []Row, existing map[string]struct{}, results []RowResult) []pendingRow {
	seen := make(map[string]struct{}, len(rows))
	pending := make([]pendingRow, 0, len(rows))

	for i, row := range rows {
		res := &results[i]
		res.Row = i

		var missing []string
		for _, label := range requiredLabels {
			if row[label] == "" {
				missing = append(missing, label)
			}
		}
		if len(missing) > 0 {
			res.Reason = ReasonValidationFailed
			res.Detail = fmt.Sprintf("missing required column(s): %s", strings.Join(missing, ", "))
			continue
		}

		handle := normalize.Handle(row["Store Name"])
		res.Handle = handle

		if _, dup := seen[handle]; dup {
			res.Reason = ReasonDuplicateHandle
			res.Detail = fmt.Sprintf("handle %q already used by an earlier row in this batch", handle)
			continue
		}
		if _, dup := existing[handle]; dup {
			res.Reason = ReasonDuplicateHandle
			res.Detail = fmt.Sprintf("handle %q already exists from a previous import", handle)
			continue
		}
		seen[handle] = struct{}{}

		fields := make(map[string]string, len(FieldLabels))
		for _, label := range FieldLabels {
			fields[normalize.FieldKey(label)] = row[label]
		}
		pending = append(pending, pendingRow{index: i, fields: fields})
	}

	return pending
}

func (p *Pipeline) existingHandles(ctx context.Context) (map[string]struct{}, error) {
	records, err := p.reader.List(ctx, SchemaName, dedupPageLimit)
	if err != nil {
		return nil, err
	}

	handles := make(map[string]struct{}, len(records))
	for _, r := range records {
		handles[r.Handle] = struct{}{}
	}
	return handles, nil
}
