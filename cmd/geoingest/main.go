// Command geoingest ingests GIS vector sources into a cached dataset and
// inspects the result.
//
// Usage:
//
//	geoingest ingest  -roads data/oproad -regions data/regions.geojson -settlements data/GB.txt
//	geoingest stats   -cache cache
//	geoingest render  -cache cache -out preview.png
//	geoingest query   -cache cache -at 530,180
//
// Settings not given as flags come from GEOINGEST_* environment variables
// or a .env file in the working directory. Relative source paths missing
// from the working directory are looked up under GEOINGEST_DATA_DIR.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/beetlebugorg/geoingest/internal/config"
	"github.com/beetlebugorg/geoingest/internal/logger"
	"github.com/beetlebugorg/geoingest/internal/metrics"
	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

// Exit codes by error kind.
const (
	exitOK        = 0
	exitIo        = 1
	exitMalformed = 2
	exitSchema    = 3
)

type command struct {
	name    string
	summary string
	run     func(cfg config.Config, args []string, stdout io.Writer) error
}

var commands = []command{
	{"ingest", "read sources and write the dataset cache", runIngest},
	{"stats", "summarize a cached dataset", runStats},
	{"render", "draw a cached dataset to a PNG preview", runRender},
	{"query", "look up paths and settlements around a point", runQuery},
}

func main() {
	logger.Setup()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitMalformed
	}
	if args[0] == "-h" || args[0] == "-help" || args[0] == "help" {
		usage(stdout)
		return exitOK
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		fmt.Fprintf(stderr, "geoingest: unknown command %q\n", args[0])
		usage(stderr)
		return exitMalformed
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "geoingest: %v\n", err)
		return exitMalformed
	}
	if cfg.MetricsAddr != "" {
		serveMetrics(cfg.MetricsAddr)
	}

	if err := cmd.run(cfg, args[1:], stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		logger.L().Error("command_failed", "command", cmd.name, "err", err)
		fmt.Fprintf(stderr, "geoingest %s: %v\n", cmd.name, err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, geoingest.ErrSchemaMismatch):
		return exitSchema
	case errors.Is(err, geoingest.ErrMalformedInput), errors.Is(err, errUsage):
		return exitMalformed
	default:
		return exitIo
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: geoingest <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'geoingest <command> -h' for command flags.")
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	go func() {
		logger.L().Info("metrics_listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.L().Error("metrics_server_error", "addr", addr, "err", err)
		}
	}()
}
