package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cardioserve/internal/smoke"
)

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Post the sample patients to a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		client := smoke.NewClient(url, cmd.OutOrStdout())
		client.HTTP.Timeout = timeout

		report := client.Run(cmd.Context(), smoke.SamplePatients())
		if report.Failed > 0 {
			return fmt.Errorf("%d of %d smoke tests failed", report.Failed, report.Total)
		}
		return nil
	},
}

func init() {
	smokeCmd.Flags().String("url", "http://localhost:5000", "base URL of the running server")
	smokeCmd.Flags().Duration("timeout", smoke.DefaultTimeout, "per-request timeout")
}
