// Package schema produces and compares JSON schemas for component types.
// A stored schema acts as a cross-process type tag check: component data may
// only be restored into a pool whose current schema matches the schema the
// data was persisted with.
package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"
)

var ErrSchemaMismatch = eris.New("component schema mismatch")

// Serialize returns the JSON schema of v's type.
func Serialize(v any) ([]byte, error) {
	componentSchema := jsonschema.Reflect(v)
	bz, err := componentSchema.MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "component must be json serializable")
	}
	return bz, nil
}

// Validate fails with ErrSchemaMismatch when the two schemas differ. The diff
// is carried in the error message.
func Validate(current []byte, stored []byte) error {
	patch, err := jsondiff.CompareJSON(current, stored)
	if err != nil {
		return eris.Wrap(err, "")
	}
	if patch.String() != "" {
		return eris.Wrap(ErrSchemaMismatch, patch.String())
	}
	return nil
}
