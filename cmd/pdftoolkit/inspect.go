package main

import (
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-toolkit/internal/engine"
)

// singleInput builds a command that takes one file and wraps it in a request.
func singleInput(a *app, use, short string, build func(engine.Input) engine.Request) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, build(in))
		},
	}
}

func extractTextCmd(a *app) *cobra.Command {
	return singleInput(a, "extract-text <pdf>", "Write the text of every page to a .txt file",
		func(in engine.Input) engine.Request { return engine.ExtractTextRequest{Input: in} })
}

func toWordCmd(a *app) *cobra.Command {
	return singleInput(a, "to-word <pdf>", "Write the text of every page to a .doc file",
		func(in engine.Input) engine.Request { return engine.ToWordRequest{Input: in} })
}

func compressCmd(a *app) *cobra.Command {
	return singleInput(a, "compress <pdf>", "Re-save a PDF with object streams",
		func(in engine.Input) engine.Request { return engine.CompressRequest{Input: in} })
}

func infoCmd(a *app) *cobra.Command {
	return singleInput(a, "info <pdf>", "Show the title, page count and other metadata",
		func(in engine.Input) engine.Request { return engine.InfoRequest{Input: in} })
}

func protectCmd(a *app) *cobra.Command {
	var password string

	cmd := singleInput(a, "protect <pdf>", "Password-protect a PDF (not supported)",
		func(in engine.Input) engine.Request { return engine.ProtectRequest{Input: in, Password: password} })
	cmd.Flags().StringVar(&password, "password", "", "password to set")
	return cmd
}

func unlockCmd(a *app) *cobra.Command {
	var password string

	cmd := singleInput(a, "unlock <pdf>", "Remove a PDF password (not supported)",
		func(in engine.Input) engine.Request { return engine.UnlockRequest{Input: in, Password: password} })
	cmd.Flags().StringVar(&password, "password", "", "current password")
	return cmd
}
