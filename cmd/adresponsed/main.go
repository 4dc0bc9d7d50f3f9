package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adresponse/adresponse/internal/cli"
	"github.com/adresponse/adresponse/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "adresponsed",
		Short: "AdResponse daemon and CLI",
		Long:  "AdResponse daemon for running the RFP management API server and loading sample data",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.SeedCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
