package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/qualinet/review-planner/internal/cli"
)

func main() {
	command := NewReviewCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewReviewCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviewctl [flags] [options]",
		Short: "reviewctl controls the Review Planner service.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdGet())
	cmd.AddCommand(cli.NewCmdCreate())
	cmd.AddCommand(cli.NewCmdAssign())
	cmd.AddCommand(cli.NewCmdAccept())
	cmd.AddCommand(cli.NewCmdReject())
	cmd.AddCommand(cli.NewCmdStart())
	cmd.AddCommand(cli.NewCmdRate())
	cmd.AddCommand(cli.NewCmdVerify())
	cmd.AddCommand(cli.NewCmdFinalize())

	return cmd
}
