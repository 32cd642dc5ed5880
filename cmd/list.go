package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mvnscan/internal/controller"
	m "mvnscan/internal/model"
)

var exportFlag string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List provenance-tagged source units",
		Long:  listLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := projectDirArg(args)

			parser, err := buildProjectParser(dir)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cacheEnabled := !viper.GetBool(noCacheFlagName)
			cacheDir := m.Path(viper.GetString(cacheDirConfigKey))

			if _, err := parser.ResolveProjectModel(ctx, dir, cacheEnabled, cacheDir); err != nil {
				return err
			}

			units, err := parser.ListSourceUnits(ctx, dir)
			if err != nil {
				return err
			}

			ui := controller.NewSimpleUI(cmd)
			if err := ui.DisplayUnits(ctx, units); err != nil {
				return err
			}

			if exportFlag != "" {
				return exportUnits(exportFlag, units)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&exportFlag, exportFlagName, "e", "", "write the tagged unit listing to a YAML file")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
