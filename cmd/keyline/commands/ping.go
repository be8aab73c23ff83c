package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewPingCommand creates the ping command
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check API connectivity",
		Long:  "Probe the API liveness endpoint and report the round-trip time",
		RunE: func(cmd *cobra.Command, args []string) error {
			// A liveness probe should answer fast or fail fast.
			client, err := CreateClientWithTimeout(context.Background(), constants.ShortHTTPTimeout)
			if err != nil {
				return err
			}

			start := time.Now()

			err = client.Ping(context.Background())
			if err != nil {
				return fmt.Errorf("API is unreachable: %w", err)
			}

			elapsed := time.Since(start).Round(time.Millisecond)

			status := "OK"
			if !viper.GetBool("no_color") {
				status = color.GreenString(status)
			}

			fmt.Printf("%s (%s)\n", status, elapsed)

			return nil
		},
	}
}
