package main

import (
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-toolkit/internal/engine"
)

func mergeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "merge <pdf>...",
		Short: "Join PDF files in the given order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ins, err := readInputs(args)
			if err != nil {
				return err
			}
			return a.run(cmd, engine.MergeRequest{Inputs: ins})
		},
	}
}

func splitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "split <pdf>",
		Short: "Write every page as its own PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, engine.SplitRequest{Input: in})
		},
	}
}

func deleteCmd(a *app) *cobra.Command {
	var pages string

	cmd := &cobra.Command{
		Use:   "delete <pdf>",
		Short: "Remove pages, e.g. --pages 2-3,5",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, engine.DeleteRequest{Input: in, Pages: pages})
		},
	}
	cmd.Flags().StringVarP(&pages, "pages", "p", "", "pages to delete (one-based numbers and ranges)")
	return cmd
}

func reorderCmd(a *app) *cobra.Command {
	var order string

	cmd := &cobra.Command{
		Use:   "reorder <pdf>",
		Short: "Output pages in a new order, e.g. --order 4,1,3,2",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, engine.ReorderRequest{Input: in, Order: order})
		},
	}
	cmd.Flags().StringVar(&order, "order", "", "new page order (one-based numbers and ranges, repeats allowed)")
	return cmd
}
