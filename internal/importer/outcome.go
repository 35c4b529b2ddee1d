package importer

import "github.com/google/uuid"

// FailureReason classifies why a row did not produce a remote record.
type FailureReason string

const (
	// ReasonValidationFailed marks rows rejected before any remote call.
	ReasonValidationFailed FailureReason = "row_validation_failed"
	// ReasonDuplicateHandle marks rows whose handle collides with an earlier
	// row in the batch or an already-imported record.
	ReasonDuplicateHandle FailureReason = "duplicate_handle"
	// ReasonCreateFailed marks rows rejected by the remote create call.
	ReasonCreateFailed FailureReason = "record_create_failed"
	// ReasonCancelled marks rows never attempted because the batch was
	// cancelled. Records created before cancellation are not rolled back.
	ReasonCancelled FailureReason = "cancelled"
)

// RowResult is the per-row outcome, indexed by source row order.
type RowResult struct {
	Row       int           `json:"row"`
	Handle    string        `json:"handle,omitempty"`
	Succeeded bool          `json:"succeeded"`
	RecordID  string        `json:"record_id,omitempty"`
	Reason    FailureReason `json:"reason,omitempty"`
	Detail    string        `json:"detail,omitempty"`
}

// Status is the batch-level summary.
type Status string

const (
	StatusAllSucceeded   Status = "all_succeeded"
	StatusPartialSuccess Status = "partial_success"
	StatusAllFailed      Status = "all_failed"
)

// Outcome aggregates one batch. Rows always appear in input order regardless
// of the concurrency used to issue creates.
type Outcome struct {
	BatchID   uuid.UUID   `json:"batch_id"`
	Status    Status      `json:"status"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Rows      []RowResult `json:"rows"`
}

func summarize(batchID uuid.UUID, rows []RowResult) *Outcome {
	out := &Outcome{BatchID: batchID, Rows: rows}
	for _, r := range rows {
		if r.Succeeded {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}

	switch {
	case out.Failed == 0:
		out.Status = StatusAllSucceeded
	case out.Succeeded == 0:
		out.Status = StatusAllFailed
	default:
		out.Status = StatusPartialSuccess
	}

	return out
}
