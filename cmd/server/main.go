package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mikeychann-hash/FGD-sub000/internal/knowledge"
	"github.com/mikeychann-hash/FGD-sub000/internal/persistence/plandb"
	"github.com/mikeychann-hash/FGD-sub000/internal/persistence/planlog"
	"github.com/mikeychann-hash/FGD-sub000/internal/planners"
	"github.com/mikeychann-hash/FGD-sub000/internal/registry"
	"github.com/mikeychann-hash/FGD-sub000/internal/transport/ws"
	"github.com/mikeychann-hash/FGD-sub000/internal/tuning"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		schemaPath = flag.String("schema", "", "plan request JSON schema (default: <configs>/../schemas/plan_request.schema.json; empty file disables validation)")
		disableDB  = flag.Bool("disable_db", false, "disable the plan history index")
		disableLog = flag.Bool("disable_plan_log", false, "disable the compressed plan audit log")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	know, err := knowledge.Load(*configDir)
	if err != nil {
		logger.Fatalf("load knowledge: %v", err)
	}

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", tp)
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	reg := registry.New()
	if err := planners.RegisterAll(reg, know, tune); err != nil {
		logger.Fatalf("register planners: %v", err)
	}
	disp := registry.NewDispatcher(reg, logger)
	disp.MaxDurationBias = tune.MaxDurationBias

	var schema *jsonschema.Schema
	sp := strings.TrimSpace(*schemaPath)
	if sp == "" {
		sp = filepath.Join(filepath.Dir(strings.TrimRight(*configDir, "/")), "schemas", "plan_request.schema.json")
	}
	if _, statErr := os.Stat(sp); statErr == nil {
		schema, err = jsonschema.Compile(sp)
		if err != nil {
			logger.Fatalf("compile request schema: %v", err)
		}
		logger.Printf("request schema: %s", sp)
	} else {
		logger.Printf("request schema not found (%s); validation disabled", sp)
	}

	var recorders []ws.Recorder
	if !*disableLog {
		pl := planlog.NewPlanLogger(*dataDir)
		defer pl.Close()
		recorders = append(recorders, pl)
	}
	if !*disableDB {
		db, err := plandb.Open(filepath.Join(*dataDir, "plans.db"))
		if err != nil {
			logger.Fatalf("open plan history: %v", err)
		}
		defer db.Close()
		recorders = append(recorders, db)
	}

	ctx, cancel := signalContext()
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/planners", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(map[string]any{
			"planners": reg.List(),
		})
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")

		// Minimal Prometheus exposition format.
		fmt.Fprintf(rw, "# HELP npcplanner_registered_planners Number of registered action planners.\n")
		fmt.Fprintf(rw, "# TYPE npcplanner_registered_planners gauge\n")
		fmt.Fprintf(rw, "npcplanner_registered_planners %d\n", len(reg.List()))
	})
	mux.HandleFunc("/v1/ws", ws.NewServer(&ws.Dispatch{
		Planner:   disp,
		Schema:    schema,
		Recorders: recorders,
	}, logger).Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("planners: %s", strings.Join(reg.List(), ", "))
	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
