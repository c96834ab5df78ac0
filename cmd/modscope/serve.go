package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/modscope/internal/server"
)

func runServe(args []string, logger *zap.Logger, verbose bool) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)

	var (
		dataDir   string
		addr      string
		staticDir string
		noCORS    bool
	)

	fs.StringVar(&dataDir, "data", viper.GetString("data.dir"), "Directory of gene_data_<SAMPLE>.json datasets")
	fs.StringVar(&addr, "addr", viper.GetString("server.addr"), "Listen address")
	fs.StringVar(&staticDir, "static", viper.GetString("server.static"), "Frontend bundle directory to serve (optional)")
	fs.BoolVar(&noCORS, "no-cors", false, "Disable permissive CORS headers")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Serve gene datasets over an HTTP JSON API.

The catalog is loaded once at startup and never mutated. With -static
the server also hosts a prebuilt frontend bundle, falling back to its
index.html for client-side routes.

Usage:
  modscope serve [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  modscope serve -data data/
  modscope serve -data data/ -addr :9090
  modscope serve -data data/ -static dist/
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if dataDir == "" {
		fmt.Fprintf(os.Stderr, "Error: -data is required (flag or data.dir config)\n\n")
		fs.Usage()
		return ExitUsage
	}

	catalog, ok := loadCatalog(dataDir, logger)
	if !ok {
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Loaded %d samples from %s\n", catalog.Len(), dataDir)

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.NewServer(catalog, server.Options{
		StaticDir:   staticDir,
		DisableCORS: noCORS,
	})
	srv.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Listening on %s\n", addr)
	if err := srv.Run(ctx, addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
