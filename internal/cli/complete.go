package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/peterfpeterson/finddata/internal/infra/logger"
)

// completeCmd prints the candidate value lists shell completion scripts
// consume: live instrument codes, accepted log level names, or the root
// command's flag names. One space-separated line per invocation.
func completeCmd(root *cobra.Command, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "complete {instruments|loglevels|options}",
		Short:     "Print candidate values for shell completion",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"instruments", "loglevels", "options"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "instruments":
				app, err := buildApp(flags, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				instruments, err := app.catalog.ListInstruments(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(instruments, " "))
			case "loglevels":
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(logger.Levels, " "))
			case "options":
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(optionNames(root), " "))
			}
			return nil
		},
	}
}

// optionNames collects the root command's long flag names. The help and
// version flags are seeded by hand because cobra registers them lazily.
func optionNames(root *cobra.Command) []string {
	seen := map[string]bool{"help": true, "version": true}
	collect := func(f *pflag.Flag) { seen[f.Name] = true }
	root.Flags().VisitAll(collect)
	root.PersistentFlags().VisitAll(collect)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, "--"+name)
	}
	sort.Strings(names)
	return names
}
