// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/mailpog/internal/log"
)

const usageText = `
Usage:
  mailpog [OPTIONS] [COMMAND]

  Send a templated message to every recipient of a batch, within the
  hourly and daily limits of the sending accounts.

Version:
  %s

Commands:
  run       Dispatch all recipient batches (default)
  check     Validate the configuration and count the recipients

Options:
%s
`

var (
	// Version is set at compile-time.
	Version string
)

func main() {
	var (
		configFilename string
		envFilename    string
	)

	flags := pflag.NewFlagSet("mailpog", pflag.ContinueOnError)
	flags.StringVarP(&configFilename, "config", "c", "", "Path to a configuration file")
	flags.StringVar(&envFilename, "env-file", ".env", "Path to a dotenv file with secrets")
	flags.Usage = printUsage(flags)

	if err := flags.Parse(os.Args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}

		log.Fatal().Err(err).Msg("could not parse flags")
	}

	switch commandName := resolveCommand(flags); commandName {
	case "run", "check":
		loadEnvFile(envFilename)
		setupConfig(configFilename)
		setupLogger()
		printConfig()
		runCommand(commandName)
	default:
		flags.Usage()
		os.Exit(2)
	}
}

// resolveCommand returns the command named on the command line. Without one the batch is
// dispatched.
func resolveCommand(flags *pflag.FlagSet) string {
	if name := flags.Arg(1); name != "" {
		return name
	}

	return "run"
}

type command interface {
	run(context.Context) error
}

func runCommand(commandName string) {
	var (
		cmd command
		err error
	)

	switch commandName {
	case "run":
		cmd, err = newDispatchCommand()
	case "check":
		cmd, err = newCheckCommand()
	}

	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize the application")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msgf("%s failed", commandName)
	}
}

func printUsage(flags *pflag.FlagSet) func() {
	return func() {
		fmt.Fprintf(os.Stderr, usageText,
			Version,
			flags.FlagUsages())
	}
}

func loadEnvFile(filename string) {
	if err := godotenv.Load(filename); err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("filename", filename).Msg("no env file found")
			return
		}

		log.Fatal().Err(err).Str("filename", filename).Msg("could not load env file")
	}

	log.Info().Str("filename", filename).Msg("loaded env file")
}

func setupLogger() {
	if err := log.SetupFromViper(); err != nil {
		log.Fatal().Err(err).Msg("could not setup logger")
	}
}

func setupConfig(filename string) {
	viper.SetTypeByDefaultValue(true)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("MAILPOG")

	if filename != "" {
		readConfig(filename)
	} else {
		log.Info().Msg("no config file provided. using environment only")
	}
}

func readConfig(filename string) {
	log.Info().Str("filename", filename).Msg("loading configuration")
	viper.SetConfigFile(filename)

	if err := viper.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			log.Warn().Err(err).Msg("configuration file missing")
		} else {
			log.Fatal().Err(err).Msg("could not load configuration")
		}
	}
}

func printConfig() {
	keys := viper.AllKeys()
	sort.Strings(keys)

	for _, key := range keys {
		if key == "accounts" {
			continue
		}

		v, _ := json.Marshal(viper.Get(key))
		log.Debug().RawJSON(key, v).Msg("config")
	}
}
