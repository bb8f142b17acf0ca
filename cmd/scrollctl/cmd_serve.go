package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	staticcatalogs "scrollforge/internal/adapter/catalogs/static"
	httpadapter "scrollforge/internal/adapter/http"
	metricsinmem "scrollforge/internal/adapter/metrics/inmemory"
	memoryrepo "scrollforge/internal/adapter/repo/memory"
	"scrollforge/internal/app/auth"
	"scrollforge/internal/app/catalogs"
	"scrollforge/internal/app/enhance"
	"scrollforge/internal/app/history"

	"github.com/cloudwego/hertz/pkg/app/server"
)

var serveFlags struct {
	addr        string
	catalogDir  string
	corsOrigins []string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an in-memory scrollforge HTTP server for local testing",
	Long: "Starts the same HTTP surface as cmd/server, backed by the in-memory\n" +
		"repositories instead of postgres. Useful for exercising catalogs and\n" +
		"the evaluate/history endpoints without provisioning a database.",
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.addr, "addr", ":8080", "HTTP listen address")
	f.StringVar(&serveFlags.catalogDir, "catalog-dir", "./catalogs", "Directory served under /catalogs")
	f.StringSliceVar(&serveFlags.corsOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable); unset allows any origin")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(serveFlags.catalogDir); err != nil {
		return fmt.Errorf("catalog dir %s: %w", serveFlags.catalogDir, err)
	}

	store := memoryrepo.NewStore()
	decisions := memoryrepo.NewDecisionRepo(store)
	credentials := memoryrepo.NewClientCredentialRepo(store)
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		RegisterUC:     auth.RegisterUseCase{Credentials: credentials},
		AuthUC:         auth.VerifyUseCase{Credentials: credentials},
		RevokeUC:       auth.RevokeUseCase{Credentials: credentials},
		EnhanceUC:      enhance.UseCase{Decisions: decisions, Metrics: kpiRecorder},
		HistoryUC:      history.UseCase{Decisions: decisions},
		CatalogsUC:     catalogs.UseCase{Provider: staticcatalogs.Provider{Root: serveFlags.catalogDir}},
		KPI:            kpiRecorder,
		AllowedOrigins: serveFlags.corsOrigins,
	}

	s := server.Default(server.WithHostPorts(serveFlags.addr))
	h.RegisterRoutes(s)

	fmt.Fprintf(cmd.OutOrStdout(), "scrollctl serve: listening on %s (in-memory store)\n", serveFlags.addr)
	s.Spin()
	return nil
}
