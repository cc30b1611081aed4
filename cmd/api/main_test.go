package main

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulf/catalogo-api/pkg/logger"
)

// En un checkout limpio no existe docs/swagger.json; la API debe arrancar sin
// la UI de documentación en vez de morir en el arranque.
func TestMountSwagger_SinArchivoNoMontaYNoEntraEnPanico(t *testing.T) {
	app := fiber.New()

	require.NotPanics(t, func() {
		mountSwagger(app, logger.Nop(), filepath.Join(t.TempDir(), "swagger.json"))
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/docs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMountSwagger_ConArchivoSirveLaUI(t *testing.T) {
	file := filepath.Join(t.TempDir(), "swagger.json")
	doc := `{"swagger":"2.0","info":{"title":"Catálogo API","version":"1.0"},"paths":{}}`
	require.NoError(t, os.WriteFile(file, []byte(doc), 0o644))

	app := fiber.New()
	require.NotPanics(t, func() { mountSwagger(app, logger.Nop(), file) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/docs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
