// psyche-sim runs emotional trajectory simulations over personas
// defined in a YAML catalog.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	psyche "github.com/synthmind-ai/psyche-sdk-go"
	"github.com/synthmind-ai/psyche-sdk-go/config"
)

var (
	flagCatalog    string
	flagPersona    string
	flagSteps      int
	flagVolatility float64
	flagSeed       int64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "psyche-sim",
		Short: "Simulate emotional state trajectories for personas",
	}
	root.AddCommand(newSimulateCmd())
	root.AddCommand(newCatalogCmd())
	return root
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a Markov trajectory for a persona and print each step",
		RunE:  runSimulate,
	}
	cmd.Flags().StringVar(&flagCatalog, "catalog", "", "catalog YAML path (defaults to PSYCHE_CATALOG)")
	cmd.Flags().StringVar(&flagPersona, "persona", "", "persona name from the catalog")
	cmd.Flags().IntVar(&flagSteps, "steps", 10, "number of transition steps")
	cmd.Flags().Float64Var(&flagVolatility, "volatility", -1, "override volatility in [0,1]")
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed, 0 means time-seeded")
	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.SlogLevel())
	defer cleanup()

	catalogPath := flagCatalog
	if catalogPath == "" {
		catalogPath = cfg.CatalogPath
	}
	if catalogPath == "" {
		return fmt.Errorf("no catalog: pass --catalog or set PSYCHE_CATALOG")
	}
	cat, err := config.LoadCatalog(catalogPath)
	if err != nil {
		return err
	}

	persona, ok := cat.PersonaByName(flagPersona)
	if !ok {
		return fmt.Errorf("persona %q not in catalog", flagPersona)
	}

	volatility := cfg.Volatility
	if flagVolatility >= 0 {
		volatility = flagVolatility
	}
	seed := cfg.Seed
	if flagSeed != 0 {
		seed = flagSeed
	}

	engine := psyche.NewTransitionEngine(psyche.EngineConfig{
		Volatility: volatility,
		Seed:       seed,
		Logger:     logger,
	})

	logger.Info("simulation start",
		"persona", persona.Name,
		"steps", flagSteps,
		"volatility", volatility,
	)

	states := engine.SimulateTrajectory(persona.State, persona.Traits, flagSteps)
	for i, state := range states {
		dom, intensity := state.Dominant()
		fmt.Fprintf(cmd.OutOrStdout(), "step %2d  %-12s %.3f  (%s)\n",
			i, dom.Name, intensity, dom.Category)
	}
	return nil
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate a catalog file and list its contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flagCatalog
			if path == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				path = cfg.CatalogPath
			}
			if path == "" {
				return fmt.Errorf("no catalog: pass --catalog or set PSYCHE_CATALOG")
			}
			cat, err := config.LoadCatalog(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range cat.Personas {
				dom, v := p.DominantEmotion()
				fmt.Fprintf(out, "persona  %-20s dominant %s %.2f\n", p.Name, dom.Name, v)
			}
			for name := range cat.Masks {
				fmt.Fprintf(out, "mask     %s\n", name)
			}
			for _, tr := range cat.Triggers {
				fmt.Fprintf(out, "trigger  %s\n", tr.Name())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagCatalog, "catalog", "", "catalog YAML path (defaults to PSYCHE_CATALOG)")
	return cmd
}
