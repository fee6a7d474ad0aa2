package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/avbuilds/manifesto/internal/logger"
	"github.com/avbuilds/manifesto/internal/model"
)

func newStatusCmd(root *rootFlags) *cobra.Command {
	var rootDir string
	var vars []string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print a table of manifests and their action counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "info"
			if root.verbose {
				level = "debug"
			}
			log, err := logger.New(logger.Options{Writer: cmd.ErrOrStderr(), Level: level, HumanReadable: true, Component: "manifesto"})
			if err != nil {
				return err
			}

			if err := validateRoot(rootDir); err != nil {
				return err
			}

			parsedVars, err := parseVars(vars)
			if err != nil {
				return err
			}

			_, manifests, _, err := loadGraph(log, rootDir, parsedVars)
			if err != nil {
				return err
			}

			return printStatus(cmd, manifests)
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", ".", "directory to load manifests from")
	cmd.Flags().StringArrayVar(&vars, "var", nil, "key=value pair exposed to guards under the vars namespace")

	return cmd
}

// printStatus renders spec.md §6's status table: one row per manifest,
// sorted by name for deterministic output, with its action count and
// declared labels.
func printStatus(cmd *cobra.Command, manifests map[string]*model.Manifest) error {
	names := make([]string, 0, len(manifests))
	for name := range manifests {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MANIFEST\tACTIONS\tLABELS")
	for _, name := range names {
		m := manifests[name]
		labels := "-"
		if len(m.Labels) > 0 {
			labels = fmt.Sprintf("%v", m.Labels)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(m.Actions), labels)
	}
	return w.Flush()
}
