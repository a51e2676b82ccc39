package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/agents"
	appconfig "github.com/lewisedginton/travel_agent_orchestrator/internal/config"
	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner/providers"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/config"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:    "travel-agent",
		Usage:   "Dispatch queries to travel agents from the command line",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "config-file",
				Value:   "",
				Usage:   "Path to configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
			&cli.StringFlag{
				Name:    "provider",
				Value:   "",
				Usage:   "Planner provider override (anthropic, openai, direct)",
				EnvVars: []string{"LLM_PROVIDER"},
			},
		},
		Commands: []*cli.Command{
			listCommand(),
			agentCommand(),
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List registered agents and their tools",
		Action: func(ctx *cli.Context) error {
			registry, err := buildRegistry(ctx)
			if err != nil {
				return err
			}
			return printJSON(registry.Catalog())
		},
	}
}

func agentCommand() *cli.Command {
	return &cli.Command{
		Name:      "agent",
		Usage:     "Dispatch a single query to a named agent",
		ArgsUsage: "<name> <query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "context",
				Value: "",
				Usage: "JSON object passed as the agent's input context",
			},
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() < 2 {
				return fmt.Errorf("usage: agent <name> <query>")
			}
			name := ctx.Args().Get(0)
			query := ctx.Args().Get(1)

			var inputContext map[string]any
			if raw := ctx.String("context"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &inputContext); err != nil {
					return fmt.Errorf("invalid context: %w", err)
				}
			}

			registry, err := buildRegistry(ctx)
			if err != nil {
				return err
			}

			result := registry.Process(ctx.Context, name, agents.RawInput{
				Query:   query,
				Context: inputContext,
			})
			if err := printJSON(result); err != nil {
				return err
			}
			if result.Status == agents.StatusError {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// buildRegistry assembles the in-process agent registry from configuration
// and command line flags.
func buildRegistry(ctx *cli.Context) (*agents.Registry, error) {
	// The provider override has to land before the config loads, so that
	// validation applies to the effective provider.
	if provider := ctx.String("provider"); provider != "" {
		if err := os.Setenv("LLM_PROVIDER", provider); err != nil {
			return nil, err
		}
	}

	var cfg appconfig.AppConfig
	if err := config.GetConfig(&cfg, ctx.String("config-file"), true); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewLogger(logger.Config{
		Level:   logger.ParseLevel(ctx.String("log-level")),
		Format:  "text",
		Service: cfg.ServiceName,
	})

	factory, err := providers.NewFactory(&cfg, log)
	if err != nil {
		return nil, err
	}

	rounds := cfg.Planner.MaxToolRounds
	return agents.NewRegistry(log,
		agents.NewSearchAgent(rounds, agents.PlannerFactory(factory), log),
		agents.NewOptimizerAgent(rounds, agents.PlannerFactory(factory), log),
		agents.NewPaymentAgent(rounds, agents.PlannerFactory(factory), log),
		agents.NewNotificationAgent(rounds, agents.PlannerFactory(factory), log),
	), nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
