package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-toolkit/internal/convert"
	"github.com/thywilljoshua/pdf-toolkit/internal/engine"
	"github.com/thywilljoshua/pdf-toolkit/internal/pdfcodec"
)

// app holds the global flags and the logger shared by every command.
type app struct {
	out       string
	prefix    string
	verbose   bool
	logFormat string

	log *logrus.Logger
}

func (a *app) setup(w io.Writer) error {
	a.log = logrus.New()
	a.log.SetOutput(w)
	a.log.SetLevel(logrus.WarnLevel)
	if a.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}
	switch a.logFormat {
	case "", "text":
		a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		a.log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", a.logFormat)
	}
	return nil
}

type written struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	MIME  string `json:"mime"`
	Bytes int    `json:"bytes"`
}

type summary struct {
	Files  []written    `json:"files,omitempty"`
	Info   *engine.Info `json:"info,omitempty"`
	Notice string       `json:"notice,omitempty"`
}

// run performs req and writes every output into the output directory.
func (a *app) run(cmd *cobra.Command, req engine.Request) error {
	if a.log == nil {
		if err := a.setup(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}
	e := engine.New(pdfcodec.New(),
		engine.WithInspector(convert.NewReader()),
		engine.WithLogger(a.log.WithField("command", cmd.Name())),
	)
	if err := e.Init(cmd.Context()); err != nil {
		return err
	}
	res, err := e.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	dir := a.out
	if dir == "" {
		dir = "."
	}
	sum := summary{Info: res.Info, Notice: res.Notice}
	if len(res.Outputs) > 0 {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	for _, o := range res.Outputs {
		path := filepath.Join(dir, convert.OutputName(a.prefix, o.Name))
		if err := os.WriteFile(path, o.Data, 0o644); err != nil {
			return err
		}
		a.log.WithField("path", path).Debug("wrote output")
		sum.Files = append(sum.Files, written{Name: o.Name, Path: path, MIME: o.MIME, Bytes: len(o.Data)})
	}
	b, _ := json.MarshalIndent(sum, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func readInput(path string) (engine.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Input{}, err
	}
	return engine.Input{Name: filepath.Base(path), Data: data}, nil
}

func readInputs(paths []string) ([]engine.Input, error) {
	ins := make([]engine.Input, 0, len(paths))
	for _, p := range paths {
		in, err := readInput(p)
		if err != nil {
			return nil, err
		}
		ins = append(ins, in)
	}
	return ins, nil
}
