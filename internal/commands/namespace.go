package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dotcommander/scrumdinger/internal/output"
)

// annotationSaves marks commands that persist the scrums before returning.
const annotationSaves = "saves"

type commandEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Saves       bool     `json:"saves"`
	Flags       []string `json:"flags,omitempty"`
}

// namespaceIndex makes a bare command group print its subcommands, the flags
// each accepts and whether it saves, as a JSON envelope.
func namespaceIndex(cmd *cobra.Command) {
	cmd.RunE = func(c *cobra.Command, args []string) error {
		type resp struct {
			Namespace   string         `json:"namespace"`
			Subcommands []commandEntry `json:"subcommands"`
		}
		r := resp{Namespace: c.CommandPath(), Subcommands: []commandEntry{}}
		for _, child := range c.Commands() {
			if child.Hidden {
				continue
			}
			r.Subcommands = append(r.Subcommands, describeCommand(child))
		}
		return output.PrintSuccess(r)
	}
}

func describeCommand(c *cobra.Command) commandEntry {
	e := commandEntry{
		Name:        c.Name(),
		Description: c.Short,
		Saves:       c.Annotations[annotationSaves] == "true",
	}
	c.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		e.Flags = append(e.Flags, "--"+f.Name)
	})
	return e
}
