package schema_test

import (
	"testing"

	"pkg.ignition.dev/ignition-engine/genesis/assert"
	"pkg.ignition.dev/ignition-engine/genesis/schema"
)

type energy struct {
	Amt int64
	Cap int64
}

type ownable struct {
	Owner string
}

func TestValidateAcceptsMatchingSchemas(t *testing.T) {
	first, err := schema.Serialize(energy{})
	assert.NilError(t, err)
	second, err := schema.Serialize(energy{Amt: 10, Cap: 100})
	assert.NilError(t, err)

	// schemas describe the type, not the value
	assert.NilError(t, schema.Validate(first, second))
}

func TestValidateRejectsMismatchedSchemas(t *testing.T) {
	first, err := schema.Serialize(energy{})
	assert.NilError(t, err)
	second, err := schema.Serialize(ownable{})
	assert.NilError(t, err)

	err = schema.Validate(first, second)
	assert.ErrorIs(t, err, schema.ErrSchemaMismatch)
}
