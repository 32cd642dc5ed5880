// Package cmd provides the root command and CLI setup for mvnscan.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mvnscan/internal/adapter"
	"mvnscan/internal/domain"
	m "mvnscan/internal/model"
)

// noCacheFlag disables the persistent descriptor cache when set.
var noCacheFlag bool

// cacheDirFlag overrides the descriptor cache location.
var cacheDirFlag string

// excludePatterns is a root-level flag that filters enumerated source files.
var excludePatterns []string

// verboseFlag raises the log level to debug.
var verboseFlag bool

const rootLongDescription = `mvnscan resolves the build graph of a (possibly multi-module) Maven-style
project, caches its descriptors, enumerates its main, test and generated
source files and tags every resulting source unit with provenance markers
(build tool, language version, coordinates, source set, version control) for
downstream static analysis.

The project directory defaults to the current working directory and must
contain a pom.xml.`

const listLongDescription = `Enumerate the project's main, test and generated source files and print the
resulting provenance-tagged source units.

Classpaths are consumed as already-resolved inputs via the classpath.compile
and classpath.test configuration keys.`

const resolveLongDescription = `Resolve the project's candidate descriptors through the descriptor cache and
print the merged project model with its provenance markers.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mvnscan",
		Short: "Maven project build-graph and source-provenance scanner",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&noCacheFlag, noCacheFlagName, viper.GetBool(noCacheFlagName), "disable the persistent descriptor cache")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noCacheFlagName), noCacheFlagName)

	cmd.PersistentFlags().StringVar(&cacheDirFlag, cacheDirFlagName, viper.GetString(cacheDirConfigKey), "descriptor cache directory (defaults to a directory under the user home)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(cacheDirFlagName), cacheDirConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude source files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// projectDirArg returns the project directory argument, defaulting to the
// current directory.
func projectDirArg(args []string) m.Path {
	if len(args) > 0 {
		return m.Path(args[0])
	}

	return m.Path(".")
}

// toPaths converts configured classpath entries. The result is non-nil even
// when empty: an empty configured classpath counts as resolved.
func toPaths(entries []string) []m.Path {
	paths := make([]m.Path, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, m.Path(entry))
	}

	return paths
}

// buildProjectParser discovers the project below dir and wires the parser
// with its collaborators.
func buildProjectParser(dir m.Path) (*domain.ProjectParser, error) {
	logger := slog.Default()

	discovery := adapter.NewLocalProjectDiscovery(logger)

	project, err := discovery.Discover(dir)
	if err != nil {
		return nil, err
	}

	project.CompileClasspath = toPaths(viper.GetStringSlice(compileClasspathConfigKey))
	project.TestClasspath = toPaths(viper.GetStringSlice(testClasspathConfigKey))

	enumerator, err := domain.NewSourceEnumerator(logger, viper.GetStringSlice(excludeConfigKey))
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}

	return domain.NewProjectParser(logger, adapter.NewLocalPlatform(), project, domain.Collaborators{
		Descriptors: adapter.NewLocalDescriptorParser(logger),
		Sources:     adapter.NewLocalSourceParser(logger),
		Vcs:         adapter.NewGitProbe(),
		Enumerator:  enumerator,
	}), nil
}
