package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Jjop12/renpy/pkg/script"
	"github.com/Jjop12/renpy/pkg/sldoc"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Compile screen documents and report errors",
		Long:  `Loads each screen document and runs the prepare pass, reporting any compile errors without rendering anything.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := sldoc.NewLoader(script.New())
			failed := 0

			for _, path := range args {
				def, err := loader.LoadFile(path)
				if err == nil {
					err = def.Prepare()
				}
				if err != nil {
					failed++
					fmt.Printf("%s %s\n  %s\n", failStyle.Render("FAIL"), path, dimStyle.Render(err.Error()))
					continue
				}
				fmt.Printf("%s %s %s\n", okStyle.Render("OK"), path, dimStyle.Render("screen "+def.Name))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(args))
			}
			return nil
		},
	}
}
