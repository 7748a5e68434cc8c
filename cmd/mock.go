package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/timetable/infra/gemini"
)

var mockAddr string

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run a local interpreter stand-in for offline development",
	RunE:  runMock,
}

func init() {
	mockCmd.Flags().StringVar(&mockAddr, "addr", ":8090", "listen address")
	rootCmd.AddCommand(mockCmd)
}

func runMock(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return gemini.NewMockServer(mockAddr, nil).Start(ctx)
}
