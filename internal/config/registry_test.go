package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetConvertsEachRegisteredKind(t *testing.T) {
	var i int
	var f float64
	var b bool
	var s string

	r := New()
	r.RegisterInt("Segments", "MIN_LENGTH", &i)
	r.RegisterFloat("Related", "MIN_RELATEDNESS", &f)
	r.RegisterBool("IsPartOf", "WRAP_AROUND", &b)
	r.RegisterString("IsWalk", "LAYOUT", &s)

	require.NoError(t, r.Set("Segments", "MIN_LENGTH", "4"))
	assert.Equal(t, 4, i)

	require.NoError(t, r.Set("Related", "MIN_RELATEDNESS", "0.65"))
	assert.InDelta(t, 0.65, f, 1e-9)

	require.NoError(t, r.Set("IsPartOf", "WRAP_AROUND", "true"))
	assert.True(t, b)

	require.NoError(t, r.Set("IsWalk", "LAYOUT", "PIN_PAD"))
	assert.Equal(t, "PIN_PAD", s)
}

func TestSetUnknownModuleOrFieldIsReported(t *testing.T) {
	var i int
	r := New()
	r.RegisterInt("Segments", "MIN_LENGTH", &i)

	err := r.Set("Segments", "MAX_LENGTH", "4")
	require.Error(t, err)
	var uf *UnknownFieldError
	require.ErrorAs(t, err, &uf)

	err = r.Set("NoSuchModule", "X", "4")
	require.Error(t, err)
	require.ErrorAs(t, err, &uf)
}

func TestSetTypeMismatchIsReported(t *testing.T) {
	var i int
	var b bool
	r := New()
	r.RegisterInt("Segments", "MIN_LENGTH", &i)
	r.RegisterBool("IsPartOf", "WRAP_AROUND", &b)

	err := r.Set("Segments", "MIN_LENGTH", "not-a-number")
	require.Error(t, err)
	var tm *TypeMismatchError
	require.ErrorAs(t, err, &tm)

	err = r.Set("IsPartOf", "WRAP_AROUND", "yes")
	require.Error(t, err)
	require.ErrorAs(t, err, &tm)
}

func TestDefaultRegistryStartsEmpty(t *testing.T) {
	err := Default.Set("Nope", "Nope", "1")
	require.Error(t, err)
}
