package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	staticcatalogs "scrollforge/internal/adapter/catalogs/static"
	httpadapter "scrollforge/internal/adapter/http"
	metricsinmem "scrollforge/internal/adapter/metrics/inmemory"
	gormrepo "scrollforge/internal/adapter/repo/gorm"
	memoryrepo "scrollforge/internal/adapter/repo/memory"
	"scrollforge/internal/app/auth"
	"scrollforge/internal/app/catalogs"
	"scrollforge/internal/app/enhance"
	"scrollforge/internal/app/history"
	"scrollforge/internal/app/ports"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	decisions, credentials := mustBuildRepos()
	catalogProvider := staticcatalogs.Provider{Root: resolveCatalogRoot()}
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		RegisterUC:     auth.RegisterUseCase{Credentials: credentials},
		AuthUC:         auth.VerifyUseCase{Credentials: credentials},
		RevokeUC:       auth.RevokeUseCase{Credentials: credentials},
		EnhanceUC:      enhance.UseCase{Decisions: decisions, Metrics: kpiRecorder, MaxSlots: uint32(intEnv("SCROLLFORGE_MAX_SLOTS", 64))},
		HistoryUC:      history.UseCase{Decisions: decisions},
		CatalogsUC:     catalogs.UseCase{Provider: catalogProvider},
		KPI:            kpiRecorder,
		RequireAuth:    os.Getenv("SCROLLFORGE_REQUIRE_AUTH") == "1",
		AllowedOrigins: splitEnvList("SCROLLFORGE_CORS_ORIGINS"),
	}

	addr := stringEnv("SCROLLFORGE_HTTP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("scrollforge server listening on %s", addr)
	s.Spin()
}

func mustBuildRepos() (ports.DecisionRepository, ports.ClientCredentialRepository) {
	dsn := strings.TrimSpace(os.Getenv("SCROLLFORGE_DB_DSN"))
	if dsn == "" {
		store := memoryrepo.NewStore()
		return memoryrepo.NewDecisionRepo(store), memoryrepo.NewClientCredentialRepo(store)
	}
	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	migrationsDir := stringEnv("SCROLLFORGE_MIGRATIONS_DIR", "./migrations")
	if err := gormrepo.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	return gormrepo.NewDecisionRepo(db), gormrepo.NewClientCredentialRepo(db)
}

// resolveCatalogRoot resolves the served catalog directory: an
// explicit env var wins, otherwise prefer a catalogs/ directory next to the
// binary's working directory, falling back to the install layout used when
// the server runs from a packaged distribution root.
func resolveCatalogRoot() string {
	if v := strings.TrimSpace(os.Getenv("SCROLLFORGE_CATALOG_DIR")); v != "" {
		return v
	}
	if info, err := os.Stat("./catalogs"); err == nil && info.IsDir() {
		return "./catalogs"
	}
	return "./var/scrollforge/catalogs"
}

func stringEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// splitEnvList reads a comma-separated env var into a trimmed slice; an
// unset or blank var yields nil, which Handler treats as "allow any origin".
func splitEnvList(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
