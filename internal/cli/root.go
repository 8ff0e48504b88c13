package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-features/codegen"
)

// defaultConfigPath is used when no config path argument is given.
const defaultConfigPath = "featgen.json"

// rootCmd runs a single generation pass. Behaviour is driven entirely by the
// generator configuration file; there are no flags.
var rootCmd = &cobra.Command{
	Use:   "featgen [config-path]",
	Short: "Generate typed feature accessors from a JSON manifest",
	Long: `featgen reads a feature manifest and emits a Go source unit containing the
key enumeration, the resolver capability contract, and a typed facade.

The single optional argument is the path of the generator configuration file
(default: featgen.json). Recognized options: inputFilePath, outputFilePath,
outputFilename, outputPackage.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := defaultConfigPath
		if len(args) == 1 {
			configPath = args[0]
		}
		return runGenerate(configPath)
	},
}

func runGenerate(configPath string) error {
	PrintInfo("reading generator config %s", configPath)
	cfg, err := codegen.LoadConfig(configPath)
	if err != nil {
		return err
	}

	PrintInfo("generating from manifest %s", cfg.InputFilePath)
	target, err := codegen.Run(cfg)
	if err != nil {
		return err
	}

	PrintSuccess("wrote %s", target)
	return nil
}

// SetVersion stamps the build version onto the root command.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the CLI and returns the terminal error, if any.
func Execute() error {
	return rootCmd.Execute()
}
