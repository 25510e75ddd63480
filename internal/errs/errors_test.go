package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassOfMapsKindsPerPolicy(t *testing.T) {
	assert.Equal(t, Fatal, ClassOf(New(KindConfig, errors.New("x"))))
	assert.Equal(t, Fatal, ClassOf(New(KindMap, errors.New("x"))))
	assert.Equal(t, Transient, ClassOf(New(KindTransport, errors.New("x"))))
	assert.Equal(t, Normal, ClassOf(New(KindProduce, errors.New("x"))))
	assert.Equal(t, Normal, ClassOf(New(KindParse, errors.New("x"))))
	assert.Equal(t, Normal, ClassOf(New(KindFilterReject, errors.New("x"))))
}

func TestClassOfDefaultsUnknownToTransient(t *testing.T) {
	assert.Equal(t, Transient, ClassOf(errors.New("some plain error")))
	assert.Equal(t, Normal, ClassOf(nil))
}

func TestIsMatchesKind(t *testing.T) {
	err := New(KindParse, errors.New("bad json"))
	assert.True(t, Is(err, KindParse))
	assert.False(t, Is(err, KindConfig))
}

func TestNewNilIsNil(t *testing.T) {
	assert.Nil(t, New(KindConfig, nil))
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := New(KindTransport, inner)
	assert.True(t, errors.Is(err, inner))
}
