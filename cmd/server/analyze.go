package main

import (
	"fmt"

	"github.com/benbeisheim/minitchess-backend/internal/config"
	"github.com/benbeisheim/minitchess-backend/internal/engine"
	"github.com/benbeisheim/minitchess-backend/internal/model"
	"github.com/spf13/cobra"
)

func newBestMoveCmd(load func() (config.Config, error)) *cobra.Command {
	var boardFlag, colorFlag string
	var ply int

	cmd := &cobra.Command{
		Use:   "bestmove",
		Short: "Print the engine's move for a position",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			b, err := parseBoardFlag(boardFlag)
			if err != nil {
				return err
			}
			c, err := parseColorFlag(colorFlag)
			if err != nil {
				return err
			}
			ec, err := cfg.Engine.Build()
			if err != nil {
				return err
			}
			e, err := engine.New(ec)
			if err != nil {
				return err
			}

			a := e.Analyze(b, c, ply)
			out := cmd.OutOrStdout()
			if !a.Found {
				fmt.Fprintf(out, "%s has no legal moves\n", c)
				return nil
			}
			fmt.Fprintf(out, "%s\t%s-%s\t%s\tscore %.1f\tnodes %d\n",
				model.ToNotation(a.Move), a.Move.From, a.Move.To, a.Reason, a.Score, a.Nodes)
			return nil
		},
	}
	cmd.Flags().StringVar(&boardFlag, "board", "", "board ranks separated by /, White's back rank first (default start position)")
	cmd.Flags().StringVar(&colorFlag, "color", "white", "side to move")
	cmd.Flags().IntVar(&ply, "ply", 0, "plies already played")
	return cmd
}

func newMovesCmd(load func() (config.Config, error)) *cobra.Command {
	var boardFlag, colorFlag string

	cmd := &cobra.Command{
		Use:   "moves",
		Short: "List every legal move for one side",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := load(); err != nil {
				return err
			}
			b, err := parseBoardFlag(boardFlag)
			if err != nil {
				return err
			}
			c, err := parseColorFlag(colorFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			moves := model.GenerateAllMoves(b, c)
			for _, m := range moves {
				fmt.Fprintf(out, "%s\t%s-%s\n", model.ToNotation(m), m.From, m.To)
			}
			fmt.Fprintf(out, "%d moves\n", len(moves))
			return nil
		},
	}
	cmd.Flags().StringVar(&boardFlag, "board", "", "board ranks separated by /, White's back rank first (default start position)")
	cmd.Flags().StringVar(&colorFlag, "color", "white", "side to move")
	return cmd
}
