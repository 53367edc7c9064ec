package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-toolkit/internal/engine"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := rootCmd(&app{})

	if err := root.ExecuteContext(ctx); err != nil {
		if engine.IsUserError(err) {
			fmt.Fprintln(os.Stderr, "notice:", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func rootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "pdftoolkit",
		Short:         "Merge, split, reorder and stamp PDF files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&a.out, "out", "o", "", "output directory (default: current directory)")
	root.PersistentFlags().StringVar(&a.prefix, "prefix", "", "prefix output file names with a slug of this value")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log progress")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format: text|json")

	root.AddCommand(
		mergeCmd(a),
		splitCmd(a),
		deleteCmd(a),
		reorderCmd(a),
		rotateCmd(a),
		watermarkCmd(a),
		backgroundCmd(a),
		imagesCmd(a),
		textCmd(a),
		doc2pdfCmd(a),
		extractTextCmd(a),
		toWordCmd(a),
		compressCmd(a),
		infoCmd(a),
		protectCmd(a),
		unlockCmd(a),
	)
	return root
}
