package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-toolkit/internal/engine"
)

func imagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "images <image>...",
		Short: "Build a PDF with one page per image, sized to the image",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ins, err := readInputs(args)
			if err != nil {
				return err
			}
			return a.run(cmd, engine.ImagesToPDFRequest{Inputs: ins})
		},
	}
}

// textFlags are the page layout options shared by text and doc2pdf.
type textFlags struct {
	title     string
	pageSize  string
	width     float64
	height    float64
	fontSize  float64
	titleSize float64
}

func (f *textFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "optional title line")
	cmd.Flags().StringVar(&f.pageSize, "page-size", string(engine.PageA4), "page size: a4|letter|custom")
	cmd.Flags().Float64Var(&f.width, "width", 0, "custom page width in points")
	cmd.Flags().Float64Var(&f.height, "height", 0, "custom page height in points")
	cmd.Flags().Float64Var(&f.fontSize, "font-size", engine.DefaultFontSize, "body font size in points")
	cmd.Flags().Float64Var(&f.titleSize, "title-size", engine.DefaultTitleSize, "title font size in points")
}

func (f *textFlags) block(body string) engine.TextBlock {
	return engine.TextBlock{
		Title:     f.title,
		Body:      body,
		Page:      engine.PageSize(f.pageSize),
		Custom:    engine.Size{Width: f.width, Height: f.height},
		FontSize:  f.fontSize,
		TitleSize: f.titleSize,
	}
}

func textCmd(a *app) *cobra.Command {
	var text string
	var file string
	var layout textFlags

	cmd := &cobra.Command{
		Use:   "text",
		Short: "Render plain text onto a single page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := text
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				body = string(b)
			}
			return a.run(cmd, engine.TextToPDFRequest{Text: layout.block(body)})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "text to render")
	cmd.Flags().StringVar(&file, "file", "", "read the text from a file instead")
	layout.register(cmd)
	return cmd
}

func doc2pdfCmd(a *app) *cobra.Command {
	var limit int
	var layout textFlags

	cmd := &cobra.Command{
		Use:   "doc2pdf <file>",
		Short: "Render the leading text of a document file onto a single page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, engine.TextToPDFRequest{
				Text:   layout.block(string(b)),
				Limit:  limit,
				Output: "word_to_pdf.pdf",
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5000, "maximum number of characters to render")
	layout.register(cmd)
	return cmd
}
