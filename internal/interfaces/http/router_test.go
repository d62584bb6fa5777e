package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantgov/mrm/internal/application"
	appservice "github.com/quantgov/mrm/internal/application/service"
	"github.com/quantgov/mrm/internal/config"
	"github.com/quantgov/mrm/internal/domain/models"
	domainservice "github.com/quantgov/mrm/internal/domain/service"
	"github.com/quantgov/mrm/internal/infrastructure/export"
	"github.com/quantgov/mrm/internal/interfaces/http/handlers"
	"github.com/quantgov/mrm/pkg/logger"
	"github.com/quantgov/mrm/tests/fakes"
)

const testJWTSecret = "test-secret"

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNoopLogger()
	tieringRepo := fakes.NewInMemoryTieringRepository()
	modelRepo := fakes.NewInMemoryModelRepository(tieringRepo)
	audit := fakes.NewRecordingAuditService()
	rubrics := application.NewRubricManager(models.DefaultRubric(), log)

	tiering := appservice.NewTieringAppService(
		modelRepo, tieringRepo, domainservice.NewTieringEngine(), rubrics, nil, audit, nil, log)
	inventory := appservice.NewInventoryAppService(modelRepo, tiering, audit, nil, log)
	rubric := appservice.NewRubricAppService(rubrics, audit, nil, log)
	exporter := export.NewExporter(modelRepo, tieringRepo, rubrics, t.TempDir(), log)
	exports := appservice.NewExportAppService(exporter, audit, nil, log)

	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Auth.JWTSecret = testJWTSecret

	router := NewRouter(
		cfg,
		log,
		nil,
		handlers.NewHealthHandler(nil, nil, log),
		handlers.NewModelHandler(inventory),
		handlers.NewTieringHandler(tiering),
		handlers.NewRubricHandler(rubric),
		handlers.NewExportHandler(exports),
	)
	router.SetupRoutes()
	return router
}

func doJSON(t *testing.T, router *Router, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.Engine().ServeHTTP(w, req)
	return w
}

func registerPayload() map[string]interface{} {
	return map[string]interface{}{
		"model_id":               "credit-scorer-v4",
		"model_name":             "Credit Scorer v4",
		"model_type":             "ML",
		"decision_criticality":   "High",
		"data_sensitivity":       "Regulated-PII",
		"automation_level":       "Fully-Automated",
		"regulatory_materiality": "High",
	}
}

func editorToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "risk-lead-1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func TestRegisterModelEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/models", registerPayload(), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Tiering struct {
				RiskScore float64     `json:"risk_score"`
				RiskTier  models.Tier `json:"risk_tier"`
			} `json:"tiering"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.InDelta(t, 85.0, resp.Data.Tiering.RiskScore, 0.001)
	assert.Equal(t, "Tier 1", resp.Data.Tiering.RiskTier.Label)
}

func TestRegisterModelDuplicateEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/models", registerPayload(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/models", registerPayload(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate_id")
}

func TestRegisterModelValidationEndpoint(t *testing.T) {
	router := newTestRouter(t)

	payload := registerPayload()
	delete(payload, "model_name")
	w := doJSON(t, router, http.MethodPost, "/api/v1/models", payload, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}

func TestTieringEndpoints(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusCreated,
		doJSON(t, router, http.MethodPost, "/api/v1/models", registerPayload(), nil).Code)

	// A second run appends.
	w := doJSON(t, router, http.MethodPost, "/api/v1/models/credit-scorer-v4/tiering", nil, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/models/credit-scorer-v4/tiering", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Len(t, history.Data, 2)

	w = doJSON(t, router, http.MethodGet, "/api/v1/models/credit-scorer-v4/tiering/latest", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/models/unknown/tiering/latest", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestListModelsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusCreated,
		doJSON(t, router, http.MethodPost, "/api/v1/models", registerPayload(), nil).Code)

	w := doJSON(t, router, http.MethodGet, "/api/v1/models", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "credit-scorer-v4")
	assert.Contains(t, w.Body.String(), "risk_score")
}

func TestRubricEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/rubric", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "decision_criticality")

	// Editing requires a risk-lead token.
	candidate := models.DefaultRubric()
	w = doJSON(t, router, http.MethodPut, "/api/v1/rubric", candidate, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/rubric", candidate, map[string]string{
		"Authorization": "Bearer " + editorToken(t, "analyst"),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/rubric", candidate, map[string]string{
		"Authorization": "Bearer " + editorToken(t, "risk-lead"),
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// An invalid rubric is rejected and the active one stays.
	invalid := models.DefaultRubric()
	invalid.Thresholds = nil
	w = doJSON(t, router, http.MethodPut, "/api/v1/rubric", invalid, map[string]string{
		"Authorization": "Bearer " + editorToken(t, "risk-lead"),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_rubric")
}

func TestExportEndpoint(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusCreated,
		doJSON(t, router, http.MethodPost, "/api/v1/models", registerPayload(), nil).Code)

	w := doJSON(t, router, http.MethodPost, "/api/v1/reports/export", nil, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			RunID     string `json:"run_id"`
			Artifacts []struct {
				Name   string `json:"name"`
				SHA256 string `json:"sha256"`
			} `json:"artifacts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.RunID)
	assert.Len(t, resp.Data.Artifacts, 5)
	for _, artifact := range resp.Data.Artifacts {
		assert.Len(t, artifact.SHA256, 64)
	}
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "not_found"))
}
