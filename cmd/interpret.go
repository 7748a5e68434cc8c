package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/timetable/config"
	"github.com/kilianp07/timetable/core/heuristic"
	"github.com/kilianp07/timetable/core/interpret"
	"github.com/kilianp07/timetable/core/roster"
	"github.com/kilianp07/timetable/core/transform"
	"github.com/kilianp07/timetable/infra/gemini"
	"github.com/kilianp07/timetable/infra/logger"
)

var interpretCmd = &cobra.Command{
	Use:   "interpret [utterance]",
	Short: "Run one utterance against the seed schedule and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE:  interpretOnce,
}

func init() {
	rootCmd.AddCommand(interpretCmd)
}

func interpretOnce(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	directory := roster.Seed()
	engine, err := interpret.NewEngine(
		gemini.NewClient(cfg.Interpreter, logger.New("gemini-client")),
		transform.New(directory),
		heuristic.New(logger.New("heuristic")),
		nil,
		nil,
		logger.New("interpret"),
	)
	if err != nil {
		return fmt.Errorf("interpret engine: %w", err)
	}

	utterance := strings.Join(args, " ")
	res, err := engine.Interpret(cmd.Context(), utterance, roster.SeedSchedule(directory))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
