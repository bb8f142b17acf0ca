package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	staticcatalogs "scrollforge/internal/adapter/catalogs/static"
	"scrollforge/internal/app/auth"
	"scrollforge/internal/app/catalogs"
	"scrollforge/internal/app/enhance"
	"scrollforge/internal/app/history"
	"scrollforge/internal/app/ports"
	domainenhance "scrollforge/internal/domain/enhance"
)

const clientIDHeader = "X-Client-ID"
const clientKeyHeader = "X-Client-Key"

// Handler wires the enhance/auth/history/catalogs use cases onto hertz
// routes: one struct of use cases, one RegisterRoutes method, JSON in/out
// via ctx.JSON.
type Handler struct {
	RegisterUC     auth.RegisterUseCase
	AuthUC         auth.VerifyUseCase
	RevokeUC       auth.RevokeUseCase
	EnhanceUC      enhance.UseCase
	HistoryUC      history.UseCase
	CatalogsUC     catalogs.UseCase
	KPI            kpiSnapshotProvider
	RequireAuth    bool
	AllowedOrigins []string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(newCORSConfig(h.AllowedOrigins)))

	api := s.Group("/api")
	api.POST("/auth/register", h.register)
	api.POST("/auth/revoke", h.revoke)
	api.POST("/enhance/evaluate", h.evaluate)
	api.GET("/enhance/history", h.history)

	s.GET("/catalogs/index.json", h.catalogIndex)
	s.GET("/catalogs", h.catalogList)
	s.GET("/catalogs/*filepath", h.catalogFile)
	s.GET("/ops/kpi", h.kpi)
}

func (h Handler) evaluate(c context.Context, ctx *app.RequestContext) {
	clientID, err := h.optionalClient(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body enhance.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.EnhanceUC.Execute(c, clientID, body)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	clientID := strings.TrimSpace(string(ctx.Query("client_id")))
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))

	resp, err := h.HistoryUC.Execute(c, history.Request{ClientID: clientID, Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) catalogIndex(c context.Context, ctx *app.RequestContext) {
	b, err := h.CatalogsUC.Index(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "application/json", b)
}

func (h Handler) catalogList(c context.Context, ctx *app.RequestContext) {
	names, err := h.CatalogsUC.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"catalogs": names})
}

func (h Handler) catalogFile(c context.Context, ctx *app.RequestContext) {
	path := strings.TrimPrefix(string(ctx.Param("filepath")), "/")
	if path == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_filepath", "invalid filepath")
		return
	}

	b, err := h.CatalogsUC.File(c, path)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, catalogContentType(path), b)
}

// catalogContentType picks the response content type from a catalog
// file's extension: catalogs are always structured YAML or JSON, never
// binary, so the extension is authoritative and no sniff of the body is
// needed.
func catalogContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}

// revoke requires the caller to authenticate as the credential it is
// revoking; there is no separate admin path.
func (h Handler) revoke(c context.Context, ctx *app.RequestContext) {
	clientID := strings.TrimSpace(string(ctx.GetHeader(clientIDHeader)))
	clientKey := strings.TrimSpace(string(ctx.GetHeader(clientKeyHeader)))
	if clientID == "" || clientKey == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_client_credentials", ErrMissingClientCredentials.Error())
		return
	}
	if err := h.AuthUC.Execute(c, auth.VerifyRequest{ClientID: clientID, ClientKey: clientKey}); err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.RevokeUC.Execute(c, auth.RevokeRequest{ClientID: clientID}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"client_id": clientID, "status": ports.CredentialStatusRevoked})
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	resp, err := h.RegisterUC.Execute(c, auth.RegisterRequest{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingClientIDHeader = errors.New("missing x-client-id header")
var ErrMissingClientKeyHeader = errors.New("missing x-client-key header")
var ErrMissingClientCredentials = errors.New("missing client credentials")

// optionalClient authenticates the caller when credentials are present, or
// when SCROLLFORGE_REQUIRE_AUTH is set; otherwise a request without
// credentials is simply anonymous (empty client id, no audit trail).
func (h Handler) optionalClient(c context.Context, ctx *app.RequestContext) (string, error) {
	clientID := strings.TrimSpace(string(ctx.GetHeader(clientIDHeader)))
	clientKey := strings.TrimSpace(string(ctx.GetHeader(clientKeyHeader)))
	if clientID == "" && clientKey == "" {
		if h.RequireAuth {
			return "", ErrMissingClientCredentials
		}
		return "", nil
	}
	if clientID == "" {
		return "", ErrMissingClientIDHeader
	}
	if clientKey == "" {
		return "", ErrMissingClientKeyHeader
	}
	if err := h.AuthUC.Execute(c, auth.VerifyRequest{
		ClientID:  clientID,
		ClientKey: clientKey,
	}); err != nil {
		return "", err
	}
	return clientID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingClientCredentials):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_client_credentials", err.Error())
	case errors.Is(err, ErrMissingClientIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_client_id", err.Error())
	case errors.Is(err, ErrMissingClientKeyHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_client_key", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_client_credentials", err.Error())
	case errors.Is(err, enhance.ErrEmptyCatalog):
		writeErrorBody(ctx, consts.StatusBadRequest, "empty_catalog", err.Error())
	case errors.Is(err, enhance.ErrNegativeValue):
		writeErrorBody(ctx, consts.StatusBadRequest, "negative_value", err.Error())
	case errors.Is(err, enhance.ErrInvalidProbability):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_probability", err.Error())
	case errors.Is(err, enhance.ErrTooManySlots):
		writeErrorBody(ctx, consts.StatusBadRequest, "too_many_slots", err.Error())
	case errors.Is(err, staticcatalogs.ErrInvalidCatalogPath):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_filepath", err.Error())
	case errors.Is(err, staticcatalogs.ErrUnsupportedCatalogExtension):
		writeErrorBody(ctx, consts.StatusBadRequest, "unsupported_catalog_extension", err.Error())
	case errors.Is(err, enhance.ErrInvalidRequest),
		errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case isInvariantViolation(err):
		writeErrorBody(ctx, consts.StatusInternalServerError, "invariant_violation", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func isInvariantViolation(err error) bool {
	var invErr *domainenhance.InvariantViolationError
	return errors.As(err, &invErr)
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
