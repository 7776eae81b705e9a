package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestImportHandler_TemplateDownloads(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewImportHandler(nil, nil, nil)

	engine := gin.New()
	engine.GET("/templates/hospitals", h.HospitalTemplate)
	engine.GET("/templates/patients", h.PatientTemplate)

	t.Run("hospitals", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/templates/hospitals", nil)
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename="modelo_hospitais.csv"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))

		body := rec.Body.Bytes()
		// Spreadsheet compatibility depends on the BOM and CRLF line endings
		assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, body[:3])
		assert.Contains(t, string(body), "Nome,Endereço\r\n")
	})

	t.Run("patients", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/templates/patients", nil)
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename="modelo_pacientes.csv"`, rec.Header().Get("Content-Disposition"))
		assert.Contains(t, rec.Body.String(), "Nome Completo,Número do Cartão SUS,Data de Nascimento\r\n")
	})
}
