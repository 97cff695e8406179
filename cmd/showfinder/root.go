package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "showfinder",
	Short:         "Search the TVMaze catalog for shows and their episodes",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(serveCmd, searchCmd, episodesCmd)
}
