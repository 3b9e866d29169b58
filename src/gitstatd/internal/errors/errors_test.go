package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotARepositoryError(t *testing.T) {
	err := &NotARepositoryError{Path: "/tmp/x"}
	assert.Contains(t, err.Error(), "/tmp/x")
	assert.True(t, IsNotARepository(err))
	assert.True(t, IsNotARepository(fmt.Errorf("lookup: %w", err)))
	assert.False(t, IsNotARepository(New("something else")))
}
