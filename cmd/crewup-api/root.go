package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "crewup-api",
	Short: "CrewUp marketplace API",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
}
