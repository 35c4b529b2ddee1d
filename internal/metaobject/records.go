package metaobject

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/storelocator/internal/shopify"
	"github.com/dmitrymomot/storelocator/pkg/normalize"
)

// Writer creates metaobject instances of a provisioned definition.
type Writer struct {
	exec shopify.Executor
	log  *slog.Logger
}

// NewWriter creates a Writer over the given per-shop executor.
func NewWriter(exec shopify.Executor, log *slog.Logger) *Writer {
	return &Writer{exec: exec, log: log}
}

const metaobjectCreateMutation = `
mutation MetaobjectCreate($metaobject: MetaobjectCreateInput!) {
  metaobjectCreate(metaobject: $metaobject) {
    metaobject {
      id
      handle
    }
    userErrors {
      field
      message
      code
    }
  }
}`

// Create issues a single create call and returns the remote-assigned ID.
// Transport failures and user errors both come back as a RemoteError carrying
// the first reported message and the full detail list.
func (w *Writer) Create(ctx context.Context, schemaName string, fields map[string]string, handle string) (string, error) {
	fieldInputs := make([]map[string]any, 0, len(fields))
	for key, value := range fields {
		fieldInputs = append(fieldInputs, map[string]any{
			"key":   key,
			"value": value,
		})
	}

	input := map[string]any{
		"type":   normalize.FieldKey(schemaName),
		"fields": fieldInputs,
	}
	if handle != "" {
		input["handle"] = handle
	}

	data, err := w.exec.Execute(ctx, metaobjectCreateMutation, map[string]any{
		"metaobject": input,
	})
	if err != nil {
		return "", shopify.NewRemoteError(shopify.KindRecordCreateFailed, err.Error(), nil)
	}

	var payload struct {
		Result struct {
			Metaobject *struct {
				ID     string `json:"id"`
				Handle string `json:"handle"`
			} `json:"metaobject"`
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"metaobjectCreate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", shopify.NewRemoteError(shopify.KindRecordCreateFailed, err.Error(), nil)
	}

	if len(payload.Result.UserErrors) > 0 {
		return "", shopify.NewRemoteError(shopify.KindRecordCreateFailed, "", payload.Result.UserErrors)
	}
	if payload.Result.Metaobject == nil {
		return "", shopify.NewRemoteError(shopify.KindRecordCreateFailed, "mutation returned no metaobject", nil)
	}

	return payload.Result.Metaobject.ID, nil
}

// Reader lists metaobject instances of a definition.
type Reader struct {
	exec shopify.Executor
}

// NewReader creates a Reader over the given per-shop executor.
func NewReader(exec shopify.Executor) *Reader {
	return &Reader{exec: exec}
}

const metaobjectListQuery = `
query MetaobjectList($type: String!, $first: Int!) {
  metaobjects(type: $type, first: $first) {
    nodes {
      id
      handle
      fields {
        key
        value
      }
    }
  }
}`

// List fetches up to pageLimit records and folds each record's field list into
// a map. Unknown keys are preserved as-is, keeping the reader forward
// compatible with definition evolution.
func (r *Reader) List(ctx context.Context, schemaName string, pageLimit int) ([]Record, error) {
	data, err := r.exec.Execute(ctx, metaobjectListQuery, map[string]any{
		"type":  normalize.FieldKey(schemaName),
		"first": pageLimit,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Metaobjects struct {
			Nodes []struct {
				ID     string `json:"id"`
				Handle string `json:"handle"`
				Fields []struct {
					Key   string  `json:"key"`
					Value *string `json:"value"`
				} `json:"fields"`
			} `json:"nodes"`
		} `json:"metaobjects"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Join(shopify.ErrTransport, err)
	}

	records := make([]Record, 0, len(payload.Metaobjects.Nodes))
	for _, node := range payload.Metaobjects.Nodes {
		fields := make(map[string]string, len(node.Fields))
		for _, f := range node.Fields {
			value := ""
			if f.Value != nil {
				value = *f.Value
			}
			fields[normalize.FieldKey(f.Key)] = value
		}
		records = append(records, Record{
			ID:     node.ID,
			Handle: node.Handle,
			Fields: fields,
		})
	}

	return records, nil
}
