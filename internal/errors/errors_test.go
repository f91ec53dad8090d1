package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryErrorMatchesUnavailable(t *testing.T) {
	err := fmt.Errorf("list: %w", &RegistryError{Op: "list components", Status: 503, Message: "Service Unavailable"})

	assert.ErrorIs(t, err, ErrRegistryUnavailable)
	assert.NotErrorIs(t, err, ErrRegistryDecode)

	var regErr *RegistryError
	if assert.ErrorAs(t, err, &regErr) {
		assert.Equal(t, 503, regErr.Status)
	}
	assert.Contains(t, err.Error(), "status 503")
}

func TestRegistryErrorTransportMessage(t *testing.T) {
	err := &RegistryError{Op: "get component button", Message: "connection refused"}
	assert.Equal(t, "get component button: connection refused", err.Error())
}

func TestDecodeErrorMatchesDecode(t *testing.T) {
	inner := errors.New("unexpected EOF")
	err := &DecodeError{Op: "search", Err: inner}

	assert.ErrorIs(t, err, ErrRegistryDecode)
	assert.ErrorIs(t, err, inner)
	assert.NotErrorIs(t, err, ErrRegistryUnavailable)
}

func TestNotFound(t *testing.T) {
	err := NotFound("nonexistent")

	assert.ErrorIs(t, err, ErrComponentNotFound)
	assert.Equal(t, "component nonexistent: get: component not found", err.Error())
}

func TestPackageManagerError(t *testing.T) {
	err := &PackageManagerError{Manager: "pnpm", Args: []string{"add", "clsx"}, ExitCode: 1}

	assert.ErrorIs(t, err, ErrPackageManagerFailed)
	assert.NotErrorIs(t, err, ErrPackageManagerNotFound)
	assert.Equal(t, "pnpm add clsx failed with exit code 1", err.Error())
}

func TestConfigInvalid(t *testing.T) {
	err := NewConfigInvalid("/p/harukit.json", errors.New("style is required"))

	assert.ErrorIs(t, err, ErrConfigInvalid)
	assert.Contains(t, err.Error(), "style is required")
}
