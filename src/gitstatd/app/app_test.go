package app

import (
	"testing"

	"github.com/promptkit/gitstatd/src/gitstatd/entity"
	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
)

func TestModuleGraph(t *testing.T) {
	err := fx.ValidateApp(
		Module,
		fx.Supply(entity.DefaultConfig()),
	)
	assert.NoError(t, err)
}
