package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avbuilds/manifesto/internal/action"
	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/executor"
	"github.com/avbuilds/manifesto/internal/logger"
	"github.com/avbuilds/manifesto/internal/plugin"
	"github.com/avbuilds/manifesto/internal/privilege"
)

type applyOptions struct {
	Root      string
	Manifests string
	DryRun    bool
	Label     string
	Privilege string
	Vars      []string
}

func newApplyCmd(root *rootFlags) *cobra.Command {
	opts := applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile the host against the manifests under root",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", ".", "directory to load manifests from")
	cmd.Flags().StringVar(&opts.Manifests, "manifests", "", "comma-separated manifest names to run (default: all)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "plan without executing any atom")
	cmd.Flags().StringVar(&opts.Label, "label", "", "restrict execution to manifests carrying this label")
	cmd.Flags().StringVar(&opts.Privilege, "privilege", "", "elevation helper: sudo, doas, or run0 (default: sudo)")
	cmd.Flags().StringArrayVar(&opts.Vars, "var", nil, "key=value pair exposed to guards under the vars namespace")

	return cmd
}

func runApply(cmd *cobra.Command, root *rootFlags, opts applyOptions) error {
	level := "info"
	if root.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Writer: cmd.OutOrStdout(), Level: level, HumanReadable: true, Component: "manifesto"})
	if err != nil {
		return err
	}

	if err := validateRoot(opts.Root); err != nil {
		return err
	}

	vars, err := parseVars(opts.Vars)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	g, manifests, ctxs, err := loadGraph(log, opts.Root, vars)
	if err != nil {
		return err
	}

	broker, err := privilege.NewBroker(opts.Privilege)
	if err != nil {
		return err
	}
	if err := broker.Preflight(ctx, manifests); err != nil {
		return fmt.Errorf("privilege preflight: %w", err)
	}

	sink := atom.LineSinkFunc(func(lineLevel, text string) {
		switch lineLevel {
		case "error":
			log.Error(fmt.Errorf("%s", text), "")
		case "warn":
			log.Warn(text)
		default:
			log.Info(text)
		}
	})

	registry := plugin.NewPluginRegistry(plugin.DefaultConfig(), log)
	if err := registry.Register(&plugin.EchoPlugin{Sink: sink}); err != nil {
		return fmt.Errorf("register plugins: %w", err)
	}
	if err := registry.ValidateDependencies(); err != nil {
		return fmt.Errorf("validate plugin dependencies: %w", err)
	}
	if err := registry.InitializePlugins(); err != nil {
		return fmt.Errorf("initialize plugins: %w", err)
	}

	resolver := &action.Resolver{
		Contexts: ctxs,
		Elevator: broker,
		Sink:     sink,
		Plugins:  plugin.NewAdapter(registry),
	}

	aborted := false
	unsuccessful := false

	for _, start := range splitManifests(opts.Manifests) {
		report, err := executor.Run(ctx, executor.Options{
			Graph:    g,
			Contexts: ctxs,
			Planner:  resolver,
			Logger:   log,
			Start:    start,
			Label:    opts.Label,
			DryRun:   opts.DryRun,
		})
		if err != nil {
			return err
		}
		if report.Aborted {
			aborted = true
		}
		if !report.Success() {
			unsuccessful = true
		}
	}

	if !opts.DryRun && (aborted || unsuccessful) {
		return fmt.Errorf("run finished with at least one unsuccessful manifest")
	}
	return nil
}
