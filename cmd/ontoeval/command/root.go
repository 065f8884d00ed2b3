package command

import (
	"errors"
	"flag"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/ontoeval/clog"
	"github.com/cayleygraph/ontoeval/internal/config"
)

const flagConfig = "config"

// NewRootCmd returns the ontoeval command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ontoeval",
		Short:         "Ontoeval scores generated ontologies against a reference.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog complains if go flags were never parsed.
			if !flag.Parsed() {
				flag.CommandLine.Parse([]string{})
			}
			file, _ := cmd.Flags().GetString(flagConfig)
			return readConfig(viper.GetViper(), file)
		},
	}
	root.PersistentFlags().StringP(flagConfig, "c", "", "path to an explicit configuration file")
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(
		NewCompareCmd(),
		NewHttpCmd(),
		NewHealthCmd(),
		NewVersionCmd(),
	)
	return root
}

// readConfig sets up v to read ONTOEVAL_* variables and the configuration
// file. Without an explicit file, a missing ontoeval.{yml,json,...} is not an error.
func readConfig(v *viper.Viper, file string) error {
	config.SetDefaults(v)
	v.SetEnvPrefix("ontoeval")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("ontoeval")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ontoeval")
		v.AddConfigPath("/etc/ontoeval")
	}
	err := v.ReadInConfig()
	var nf viper.ConfigFileNotFoundError
	if errors.As(err, &nf) {
		clog.Infof("no configuration file found, using defaults")
		return nil
	} else if err != nil {
		return err
	}
	clog.Infof("using configuration file %q", v.ConfigFileUsed())
	return nil
}

// bindFlags binds viper keys to the flags of the command being run. Commands
// share flag names, so binding happens once the command is known.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}
