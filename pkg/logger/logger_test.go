package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/masuelto/almacen-api/pkg/logger"
)

func TestNew_NivelDesdeConfig(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "debug", Service: "almacen-api"})
	assert.Equal(t, zerolog.DebugLevel, l.Zerolog().GetLevel())
}

func TestNew_NivelIlegibleCaeAInfo(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "verboso"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}
