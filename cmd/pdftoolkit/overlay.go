package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-toolkit/internal/engine"
)

func rotateCmd(a *app) *cobra.Command {
	var angle int

	cmd := &cobra.Command{
		Use:   "rotate <pdf>",
		Short: "Rotate every page by a multiple of 90 degrees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, engine.RotateRequest{Input: in, Degrees: angle})
		},
	}
	cmd.Flags().IntVar(&angle, "angle", 90, "degrees to add to each page's rotation")
	return cmd
}

func watermarkCmd(a *app) *cobra.Command {
	var text string
	var size float64
	var opacity float64
	var rotation float64

	cmd := &cobra.Command{
		Use:   "watermark <pdf>",
		Short: "Stamp text across the middle of every page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, engine.WatermarkRequest{Input: in, Watermark: engine.Watermark{
				Text:     text,
				Size:     size,
				Opacity:  opacity,
				Rotation: rotation,
			}})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "watermark text")
	cmd.Flags().Float64Var(&size, "size", engine.DefaultWatermarkSize, "font size in points")
	cmd.Flags().Float64Var(&opacity, "opacity", engine.DefaultWatermarkOpacity, "opacity between 0 and 1")
	cmd.Flags().Float64Var(&rotation, "rotation", engine.DefaultWatermarkRotation, "text angle in degrees")
	return cmd
}

func backgroundCmd(a *app) *cobra.Command {
	var color string
	var opacity float64

	cmd := &cobra.Command{
		Use:   "background <pdf>",
		Short: "Tint every page with a background color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, engine.BackgroundRequest{Input: in, Color: color, Opacity: opacity})
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "background color: "+strings.Join(engine.BackgroundColorNames(), "|"))
	cmd.Flags().Float64Var(&opacity, "opacity", engine.DefaultBackgroundOpacity, "opacity between 0 and 1")
	return cmd
}
