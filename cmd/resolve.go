package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mvnscan/internal/controller"
	m "mvnscan/internal/model"
)

// resolveCmd represents the resolve command.
var resolveCmd = newResolveCmd()

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [dir]",
		Short: "Resolve the merged project model",
		Long:  resolveLongDescription,
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

			merged, err := parser.ResolveProjectModel(ctx, dir, cacheEnabled, cacheDir)
			if err != nil {
				return err
			}

			return controller.NewSimpleUI(cmd).DisplayModel(ctx, merged)
		},
	}
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
