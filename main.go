package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"trailpace/internal/analysis"
	"trailpace/internal/config"
	"trailpace/internal/service"
	"trailpace/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	target := flag.String("target", "", "target finish time (hh:mm:ss), overrides the config")
	modelName := flag.String("model", "", "cost model: minetti or strava")
	report := flag.Bool("report", false, "print a text report instead of starting the TUI")
	compare := flag.Bool("compare", false, "with -report, print one plan per cost model")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] route.gpx\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return errors.New("expected exactly one GPX file")
	}

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		log.Printf("No config file found, wrote defaults to %s/config.json", configDir)
		defaults := config.DefaultConfig()
		cfg = &defaults
	} else if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if *modelName != "" {
		cfg.Plan.Model = *modelName
	}
	if *target != "" {
		cfg.Plan.TargetTime = *target
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		return fmt.Errorf("invalid config (%s/config.json, environment or flags): %w", configDir, err)
	}

	targetSeconds, err := analysis.ParseDuration(cfg.Plan.TargetTime)
	if err != nil {
		return fmt.Errorf("parsing target time: %w", err)
	}
	model, err := analysis.ModelByName(cfg.Plan.Model)
	if err != nil {
		return err
	}

	planSvc := service.NewPlanService(*cfg)

	r, err := planSvc.LoadRoute(flag.Arg(0))
	if err != nil {
		return err
	}

	if *report {
		return writeReports(planSvc, r, targetSeconds, model, *compare)
	}

	// Launch TUI
	app := tui.NewApp(planSvc, r, targetSeconds, model)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func writeReports(planSvc *service.PlanService, r *service.Route, targetSeconds float64, model analysis.CostModel, compare bool) error {
	var plans []*service.Plan
	if compare {
		var err error
		plans, err = planSvc.Compare(r, targetSeconds)
		if err != nil {
			return err
		}
	} else {
		p, err := planSvc.Plan(r, targetSeconds, model)
		if err != nil {
			return err
		}
		plans = append(plans, p)
	}

	for i, p := range plans {
		if i > 0 {
			fmt.Println()
		}
		if err := planSvc.WriteReport(os.Stdout, r, p); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}
