package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/anisan-cli/anipahe/color"
	"github.com/anisan-cli/anipahe/config"
	"github.com/anisan-cli/anipahe/filesystem"
	"github.com/anisan-cli/anipahe/icon"
	"github.com/anisan-cli/anipahe/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func completionConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

// configErr colors the key names of unknown-key errors.
func configErr(err error) error {
	var unknown *config.UnknownKeyError
	if errors.As(err, &unknown) {
		return fmt.Errorf(
			"unknown key %s, did you mean %s?",
			style.Fg(color.Red)(unknown.Key),
			style.Fg(color.Yellow)(unknown.Closest),
		)
	}
	return err
}

func printDone(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configGetCmd, configSetCmd, configResetCmd, configWriteCmd, configDeleteCmd)

	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every key to its default")
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")

	configInfoCmd.SetOut(os.Stdout)
	configGetCmd.SetOut(os.Stdout)
}

// configCmd groups the configuration commands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change the site, extraction, server and logging settings",
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key...]",
	Short:             "Describe configuration keys, all of them when none are given",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		fields := lo.Values(config.Default)
		if len(args) > 0 {
			fields = lo.Map(args, func(k string, _ int) config.Field {
				field, err := config.Lookup(k)
				handleErr(configErr(err))
				return field
			})
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		for i := range fields {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(fields[i].Pretty())
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the effective value of a key",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		_, err := config.Lookup(args[0])
		handleErr(configErr(err))
		cmd.Println(viper.Get(args[0]))
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set <key> <value...>",
	Short:             "Change a key and save it to the config file",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		value, err := config.Set(args[0], args[1:])
		handleErr(configErr(err))
		printDone("set %s to %s", style.Fg(color.Purple)(args[0]), style.Fg(color.Yellow)(fmt.Sprint(value)))
	},
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key...]",
	Short:             "Restore keys to their defaults and save the config file",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))
		if len(args) == 0 && !all {
			handleErr(errors.New("name the keys to reset or pass --all"))
		}
		if all {
			args = nil
		}

		handleErr(configErr(config.Reset(args...)))

		if all {
			printDone("reset all config values")
			return
		}
		for _, k := range args {
			printDone("reset %s to %s", style.Fg(color.Purple)(k), style.Fg(color.Yellow)(fmt.Sprint(config.Default[k].Value)))
		}
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Save the effective configuration to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := config.Path()
		if lo.Must(cmd.Flags().GetBool("force")) {
			if exists := lo.Must(filesystem.API().Exists(path)); exists {
				handleErr(filesystem.API().Remove(path))
			}
		}

		handleErr(viper.SafeWriteConfig())
		printDone("wrote config to %s", path)
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the config file",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(config.Path()))
		printDone("deleted config")
	},
}
