// Package cli defines the finddata command surface. All failure-string
// formatting happens here; the layers below report found/not-found and
// let this package decide what the user sees.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/peterfpeterson/finddata/internal/buildinfo"
	"github.com/peterfpeterson/finddata/internal/ports"
	"github.com/peterfpeterson/finddata/internal/usecase"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	loglevel    string
	config      string
	filename    string
	getProposal bool
	listRuns    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "finddata [flags] INSTRUMENT [RUNS...]",
		Short: "Locate experiment data files in the facility catalog",
		Long: `finddata resolves instrument run numbers to data file locations by
querying the facility's catalog service. Run arguments accept single
numbers, comma-separated lists and dash ranges (e.g. 1,3,5-8).`,
		Version: buildinfo.String(),
		// Positionals are instrument and run tokens, not subcommand
		// names; without this cobra treats them as unknown commands
		// once a subcommand is registered.
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, flags, args)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.loglevel, "loglevel", "WARNING", "logging level: DEBUG, INFO or WARNING")
	pf.StringVar(&flags.config, "config", "", "path to an alternate configuration file")

	f := cmd.Flags()
	f.StringVar(&flags.filename, "filename", "", "look up the location of an exact filename instead of runs")
	f.BoolVar(&flags.getProposal, "getproposal", false, "print the proposal that owns each run")
	f.BoolVar(&flags.listRuns, "listruns", false, "print the run range of a proposal (one proposal argument)")

	cmd.AddCommand(completeCmd(cmd, flags))
	return cmd
}

func runRoot(cmd *cobra.Command, flags *rootFlags, args []string) error {
	app, err := buildApp(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// An exact filename bypasses instrument validation entirely.
	if flags.filename != "" {
		return printNamedFile(ctx, out, app.catalog, flags.filename)
	}

	if len(args) == 0 {
		return errors.New("an instrument is required (or use --filename)")
	}

	instrument, err := usecase.NewValidateInstrument(app.catalog).Execute(ctx, args[0])
	if err != nil {
		return err
	}

	if flags.listRuns {
		if len(args) != 2 {
			return errors.New("--listruns takes exactly one proposal after the instrument")
		}
		return printProposalRuns(ctx, out, app.catalog, instrument, args[1])
	}

	runs := expandAll(args[1:], app.log)

	if flags.getProposal {
		return printProposals(ctx, out, app.catalog, instrument, runs)
	}
	return printLocations(ctx, out, cmd.ErrOrStderr(), app.catalog, instrument, runs)
}

func printNamedFile(ctx context.Context, w io.Writer, cat ports.Catalog, filename string) error {
	lk, err := usecase.NewLocateNamedFile(cat).Execute(ctx, filename)
	if err != nil {
		return err
	}
	if !lk.Found {
		return fmt.Errorf("failed to find file %s", filename)
	}
	fmt.Fprintln(w, lk.Value)
	return nil
}

func printProposalRuns(ctx context.Context, w io.Writer, cat ports.Catalog, instrument, proposal string) error {
	lk, err := usecase.NewListProposalRuns(cat).Execute(ctx, instrument, proposal)
	if err != nil {
		return err
	}
	if !lk.Found {
		fmt.Fprintf(w, "Failed to find runs in proposal %s\n", proposal)
		return nil
	}
	fmt.Fprintln(w, lk.Value)
	return nil
}

func printProposals(ctx context.Context, w io.Writer, cat ports.Catalog, instrument string, runs []int) error {
	pairs, err := usecase.NewLookupProposals(cat).Execute(ctx, instrument, runs)
	if err != nil {
		return err
	}
	for _, p := range pairs {
		label := p.Proposal.Value
		if !p.Proposal.Found {
			label = "Failed to find proposal"
		}
		fmt.Fprintf(w, "%d %s\n", p.Run, label)
	}
	return nil
}

func printLocations(ctx context.Context, w, errw io.Writer, cat ports.Catalog, instrument string, runs []int) error {
	files, err := usecase.NewLocateFiles(cat).Execute(ctx, instrument, runs)
	if err != nil {
		return err
	}
	for _, f := range files {
		if f.Err != nil {
			fmt.Fprintln(errw, f.Err)
			continue
		}
		fmt.Fprintln(w, f.Path)
	}
	return nil
}
