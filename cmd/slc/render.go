package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jjop12/renpy/pkg/renderer/html"
	"github.com/Jjop12/renpy/pkg/screen"
	"github.com/Jjop12/renpy/pkg/script"
	"github.com/Jjop12/renpy/pkg/sldoc"
	"github.com/Jjop12/renpy/pkg/styling"
	"github.com/Jjop12/renpy/pkg/vdom"
	"github.com/Jjop12/renpy/pkg/widgets"
)

func newRenderCommand() *cobra.Command {
	var vars []string
	var output string

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Execute a screen document once and emit HTML",
		Args:  cobra.ExactArgs(1),
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
			elements, err := instance.Render(scope)
			if err != nil {
				return err
			}

			var buf strings.Builder
			renderer := html.NewRenderer(&buf)
			for _, el := range elements {
				node, ok := el.(*vdom.Node)
				if !ok {
					return fmt.Errorf("element %T is not a widget tree node", el)
				}
				if err := renderer.Render(node); err != nil {
					return err
				}
			}

			if output == "" {
				fmt.Println(buf.String())
				return nil
			}
			return os.WriteFile(output, []byte(buf.String()), 0644)
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "Scope variable as name=expression (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write HTML to a file instead of stdout")

	return cmd
}
