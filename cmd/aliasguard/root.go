package main

import (
	"context"

	"github.com/spf13/cobra"

	"aliasguard/cmd/aliasguard/scan"
)

func Execute() error {
	var rootCmd = &cobra.Command{
		Use:   "aliasguard",
		Short: "Deactivate email aliases that appear in known data breaches",
		Long: `Aliasguard checks every active alias of your alias provider account
against the Have I Been Pwned breach database and deactivates any
alias whose address shows up in a breach.`,
	}

	rootCmd.AddCommand(scan.NewScanCommand())
	rootCmd.AddCommand(scan.NewListAliasesCommand())
	return rootCmd.ExecuteContext(context.Background())
}
