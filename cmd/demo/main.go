// Command demo is an interactive CLI for the orchestration core: it reads
// free-form requests from stdin and prints the shaped Response for each one.
//
// Grounded on interactive_cli.py's interactive_mode/process_user_request
// loop: initialize every registered agent once, then repeatedly match,
// plan, execute, and print a result for each line of input.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/redaptive/agentcore/internal/config"
	"github.com/redaptive/agentcore/internal/orchestrator"
	"github.com/redaptive/agentcore/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file (optional)")
	energyDSN := flag.String("energy-dsn", os.Getenv("AGENTCORE_ENERGY_DSN"), "postgres DSN for the energy-monitoring agent")
	portfolioRedis := flag.String("portfolio-redis", os.Getenv("AGENTCORE_PORTFOLIO_REDIS"), "redis address for the portfolio-intelligence opportunity cache")
	cacheRedis := flag.String("cache-redis", os.Getenv("AGENTCORE_CACHE_REDIS"), "redis address for the optional plan cache")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc, shutdown, err := orchestrator.Build(ctx, cfg, orchestrator.Deps{
		Logger:             telemetry.NewClueLogger(),
		Metrics:            telemetry.NewOTELMetrics(),
		Tracer:             telemetry.NewOTELTracer(),
		EnergyMonitorDSN:   *energyDSN,
		PortfolioRedisAddr: *portfolioRedis,
		CacheRedisAddr:     *cacheRedis,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer shutdown(context.Background())

	fmt.Println("Redaptive Agentic Platform - interactive CLI")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Send natural language requests. Type 'quit' to exit.")
	for _, info := range proc.ListAvailableAgents() {
		fmt.Printf("  - %s (%s)\n", info.Name, info.State)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "q":
			return
		}

		resp, err := proc.Handle(ctx, line)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		fmt.Print(resp.String())
	}
}
