package metaobject

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/storelocator/internal/shopify"
	"github.com/dmitrymomot/storelocator/pkg/normalize"
)

// Registry provisions metaobject definitions in the shop's catalog. It keeps
// no local cache: every call re-queries the remote catalog, trading a
// redundant round trip for freedom from stale-cache bugs.
type Registry struct {
	exec shopify.Executor
	log  *slog.Logger
}

// NewRegistry creates a Registry over the given per-shop executor.
func NewRegistry(exec shopify.Executor, log *slog.Logger) *Registry {
	return &Registry{exec: exec, log: log}
}

const definitionExistsQuery = `
query DefinitionExists($type: String!) {
  metaobjectDefinitionByType(type: $type) {
    id
  }
}`

const definitionCreateMutation = `
mutation DefinitionCreate($definition: MetaobjectDefinitionCreateInput!) {
  metaobjectDefinitionCreate(definition: $definition) {
    metaobjectDefinition {
      id
    }
    userErrors {
      field
      message
      code
    }
  }
}`

// Exists reports whether a definition with the normalized schema name is
// present in the remote catalog.
func (r *Registry) Exists(ctx context.Context, schemaName string) (bool, error) {
	data, err := r.exec.Execute(ctx, definitionExistsQuery, map[string]any{
		"type": normalize.FieldKey(schemaName),
	})
	if err != nil {
		return false, err
	}

	var payload struct {
		Definition *struct {
			ID string `json:"id"`
		} `json:"metaobjectDefinitionByType"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return false, errors.Join(shopify.ErrTransport, err)
	}

	return payload.Definition != nil, nil
}

// Ensure makes the definition available, creating it from the given field
// labels when absent. Each label becomes a multi-line text field keyed by its
// normalized form. Two concurrent first-imports may both observe "absent" and
// both attempt creation; the remote "already exists" rejection is treated as
// success so the race stays harmless.
func (r *Registry) Ensure(ctx context.Context, schemaName string, fieldLabels []string) error {
	exists, err := r.Exists(ctx, schemaName)
	if err != nil {
		return shopify.NewRemoteError(shopify.KindSchemaCreateFailed, err.Error(), nil)
	}
	if exists {
		return nil
	}

	schemaType := normalize.FieldKey(schemaName)

	fieldDefs := make([]map[string]any, 0, len(fieldLabels))
	for _, label := range fieldLabels {
		fieldDefs = append(fieldDefs, map[string]any{
			"key":  normalize.FieldKey(label),
			"name": label,
			"type": FieldTypeMultiLineText,
		})
	}

	data, err := r.exec.Execute(ctx, definitionCreateMutation, map[string]any{
		"definition": map[string]any{
			"name":             schemaName,
			"type":             schemaType,
			"fieldDefinitions": fieldDefs,
		},
	})
	if err != nil {
		return shopify.NewRemoteError(shopify.KindSchemaCreateFailed, err.Error(), nil)
	}

	var payload struct {
		Result struct {
			Definition *struct {
				ID string `json:"id"`
			} `json:"metaobjectDefinition"`
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"metaobjectDefinitionCreate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return shopify.NewRemoteError(shopify.KindSchemaCreateFailed, err.Error(), nil)
	}

	if len(payload.Result.UserErrors) > 0 {
		if allAlreadyExists(payload.Result.UserErrors) {
			r.log.InfoContext(ctx, "definition already provisioned by a concurrent import",
				"schema", schemaType)
			return nil
		}
		return shopify.NewRemoteError(shopify.KindSchemaCreateFailed, "", payload.Result.UserErrors)
	}

	r.log.InfoContext(ctx, "metaobject definition created", "schema", schemaType)
	return nil
}

// allAlreadyExists reports whether every user error is the idempotent-create
// rejection for a definition that a concurrent caller provisioned first.
func allAlreadyExists(userErrors []shopify.UserError) bool {
	for _, ue := range userErrors {
		if ue.Code == "TAKEN" {
			continue
		}
		msg := strings.ToLower(ue.Message)
		if strings.Contains(msg, "already exists") || strings.Contains(msg, "taken") {
			continue
		}
		return false
	}
	return len(userErrors) > 0
}
