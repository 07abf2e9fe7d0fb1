package main

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/minitchess-backend/internal/config"
	"github.com/benbeisheim/minitchess-backend/internal/model"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "server",
		Short:        "MinitChess rules, engine and analysis server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a yaml config file")

	load := func() (config.Config, error) {
		return config.Load(configPath)
	}
	root.AddCommand(
		newServeCmd(load),
		newBestMoveCmd(load),
		newMovesCmd(load),
	)
	return root
}

// parseBoardFlag reads a board written as six ranks separated by "/",
// White's back rank first, e.g. "RNBQK/PPPPP/...../...../ppppp/kqbnr".
func parseBoardFlag(s string) (model.Board, error) {
	if s == "" {
		return model.NewBoard(), nil
	}
	return model.ParseBoard(strings.Split(s, "/"))
}

func parseColorFlag(s string) (model.Color, error) {
	c, err := model.ParseColor(strings.ToLower(s))
	if err != nil {
		return model.NoColor, fmt.Errorf("%w: %q", err, s)
	}
	return c, nil
}
