// Command riquery queries a local mirror of a refractiveindex.info-style
// catalog: look up materials, evaluate refractive index and dispersion
// quantities, and maintain a search index over the library.
//
// The catalog directory is taken from --catalog, the RIQUERY_CATALOG
// environment variable, or a .riquery.yml config file.
//
// Examples:
//
//	riquery lookup main/SiO2/Malitson
//	riquery eval main/SiO2/Malitson --at 0.8 --at 1.55
//	riquery index --db riquery.db
//	riquery search silica --db riquery.db
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ultrafast-optics/ultrafast/catalog/lookup"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "riquery",
		Short:         "Query a local refractive-index catalog mirror",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("catalog", "", "path to the catalog mirror directory")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	_ = viper.BindPFlag("catalog", cmd.PersistentFlags().Lookup("catalog"))
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindEnv("catalog", "RIQUERY_CATALOG")

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(lookupCmd())
	cmd.AddCommand(evalCmd())
	cmd.AddCommand(indexCmd())
	cmd.AddCommand(searchCmd())

	return cmd
}

func initConfig() {
	viper.SetConfigName(".riquery")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}

	viper.SetEnvPrefix("RIQUERY")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func openCatalog(log zerolog.Logger) (*lookup.Catalog, error) {
	dir := viper.GetString("catalog")
	if dir == "" {
		return nil, errors.New("no catalog directory configured (--catalog, RIQUERY_CATALOG, or config file)")
	}

	return lookup.Open(os.DirFS(dir), lookup.WithLogger(log))
}
