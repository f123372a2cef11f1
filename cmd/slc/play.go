package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Jjop12/renpy/cmd/slc/internal/ui"
	"github.com/Jjop12/renpy/pkg/screen"
	"github.com/Jjop12/renpy/pkg/script"
	"github.com/Jjop12/renpy/pkg/sldoc"
	"github.com/Jjop12/renpy/pkg/styling"
	"github.com/Jjop12/renpy/pkg/widgets"
)

func newPlayCommand() *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Run a screen document interactively in the terminal",
		Long: `Executes the document and shows the widget tree, with a prompt for
scope assignments. Each assignment re-executes the screen so the tree
reflects the new variable values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compiler := script.New()

			scope, err := parseVars(compiler, vars)
			if err != nil {
				return err
			}

			def, err := sldoc.NewLoader(compiler).LoadFile(args[0])
			if err != nil {
				return err
			}
			if err := def.Prepare(); err != nil {
				return err
			}

			styles := styling.NewRegistry()
			widgets.RegisterBaseStyles(styles)
			instance := screen.NewInstance(def, styles)

			program := tea.NewProgram(
				ui.New(def.Name, instance, compiler, scope),
				tea.WithAltScreen(),
			)
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("player failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "Initial scope variable as name=expression (repeatable)")

	return cmd
}
