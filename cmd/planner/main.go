// Command planner produces a single plan and prints it as JSON. Useful for
// inspecting planner output without running the websocket server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/knowledge"
	"github.com/mikeychann-hash/FGD-sub000/internal/planners"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/registry"
	"github.com/mikeychann-hash/FGD-sub000/internal/tuning"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

func main() {
	var (
		taskArg    = flag.String("task", "", "task JSON, or @path to a file (required)")
		ctxArg     = flag.String("context", "", "world context JSON, or @path to a file")
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		pretty     = flag.Bool("pretty", true, "indent the plan JSON")
		listOnly   = flag.Bool("list", false, "print registered actions and exit")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[planner] ", log.LstdFlags|log.Lmicroseconds)

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
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	reg := registry.New()
	if err := planners.RegisterAll(reg, know, tune); err != nil {
		logger.Fatalf("register planners: %v", err)
	}

	if *listOnly {
		for _, a := range reg.List() {
			fmt.Println(a)
		}
		return
	}

	if strings.TrimSpace(*taskArg) == "" {
		logger.Fatalf("-task is required (JSON or @file)")
	}
	taskJSON, err := readArg(*taskArg)
	if err != nil {
		logger.Fatalf("read task: %v", err)
	}
	var task protocol.Task
	if err := json.Unmarshal(taskJSON, &task); err != nil {
		logger.Fatalf("parse task: %v", err)
	}

	wctx := &worldctx.Context{}
	if strings.TrimSpace(*ctxArg) != "" {
		ctxJSON, err := readArg(*ctxArg)
		if err != nil {
			logger.Fatalf("read context: %v", err)
		}
		if err := json.Unmarshal(ctxJSON, wctx); err != nil {
			logger.Fatalf("parse context: %v", err)
		}
	}

	disp := registry.NewDispatcher(reg, logger)
	disp.MaxDurationBias = tune.MaxDurationBias

	p := disp.PlanTask(task, wctx)
	if p == nil {
		logger.Printf("no plan produced for action %q", task.Action)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(p); err != nil {
		logger.Fatalf("encode plan: %v", err)
	}
}

func readArg(arg string) ([]byte, error) {
	if strings.HasPrefix(arg, "@") {
		return os.ReadFile(strings.TrimPrefix(arg, "@"))
	}
	return []byte(arg), nil
}
