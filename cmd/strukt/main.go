package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	strukt "github.com/reoring/strukt"
	"github.com/reoring/strukt/i18n"
	"github.com/reoring/strukt/kindfile"
)

var kindFlag = &cli.StringFlag{
	Name:     "kind",
	Aliases:  []string{"k"},
	Required: true,
	Usage:    "kind declaration file (.yaml/.yml or .json)",
}

var langFlag = &cli.StringFlag{
	Name:  "lang",
	Value: "en",
	Usage: "message language (en, ja)",
}

func main() {
	app := &cli.Command{
		Name:  "strukt",
		Usage: "validate nested key-value documents against kind declarations",
		Commands: []*cli.Command{
			validateCmd(),
			checkCmd(),
			applyCmd(),
			exportCmd(),
		},
	}
	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("strukt failed", "error", err)
		os.Exit(1)
	}
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check a document against a kind declaration",
		ArgsUsage: "DOCUMENT",
		Flags: []cli.Flag{
			kindFlag,
			langFlag,
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "fail-fast, collect-all or skip (default: the declaration's mode)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			i18n.SetLanguage(cmd.String("lang"))
			k, err := loadKind(cmd.String("kind"))
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd.Args().First())
			if err != nil {
				return err
			}
			opt, err := parseModeFlag(cmd.String("mode"))
			if err != nil {
				return err
			}
			if err := k.Validate(ctx, doc, opt); err != nil {
				vs, _ := strukt.AsViolations(err)
				for _, v := range vs {
					printViolation(v)
				}
				return fmt.Errorf("%d violation(s)", len(vs))
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Collect every violation in a document, grouped by path",
		ArgsUsage: "DOCUMENT",
		Flags:     []cli.Flag{kindFlag, langFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			i18n.SetLanguage(cmd.String("lang"))
			k, err := loadKind(cmd.String("kind"))
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd.Args().First())
			if err != nil {
				return err
			}
			vm := k.ValidateAll(ctx, doc)
			for _, p := range vm.Paths() {
				for _, v := range vm[p] {
					printViolation(v)
				}
			}
			if n := vm.Len(); n > 0 {
				return fmt.Errorf("%d violation(s)", n)
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func applyCmd() *cli.Command {
	return &cli.Command{
		Name:      "apply",
		Usage:     "Apply the declaration's defaults to a document and print it",
		ArgsUsage: "DOCUMENT",
		Flags: []cli.Flag{
			kindFlag,
			langFlag,
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the document here instead of stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			i18n.SetLanguage(cmd.String("lang"))
			k, err := loadKind(cmd.String("kind"))
			if err != nil {
				return err
			}
			doc, err := loadDocument(cmd.Args().First())
			if err != nil {
				return err
			}
			applied, vs := k.ApplyDefaultsWithMeta(ctx, doc)
			for _, p := range applied {
				slog.Info("applied default", "path", p)
			}
			for _, v := range vs {
				printViolation(v)
			}
			out, err := kindfile.EncodeDocumentJSON(doc)
			if err != nil {
				return err
			}
			if path := cmd.String("output"); path != "" {
				if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
					return err
				}
			} else {
				fmt.Println(string(out))
			}
			if len(vs) > 0 {
				return fmt.Errorf("%d violation(s)", len(vs))
			}
			return nil
		},
	}
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Load a kind declaration and re-emit its normalized form",
		Flags: []cli.Flag{
			kindFlag,
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "yaml",
				Usage:   "output format: yaml or json",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			k, err := loadKind(cmd.String("kind"))
			if err != nil {
				return err
			}
			var (
				out  []byte
				diag kindfile.Diag
			)
			switch f := cmd.String("format"); f {
			case "yaml":
				out, diag, err = kindfile.ExportYAML(k)
			case "json":
				out, diag, err = kindfile.ExportJSON(k)
			default:
				return fmt.Errorf("unknown format: %q, valid formats are: yaml, json", f)
			}
			if err != nil {
				return err
			}
			warnAll(diag)
			fmt.Print(string(out))
			if !strings.HasSuffix(string(out), "\n") {
				fmt.Println()
			}
			return nil
		},
	}
}

func loadKind(path string) (*strukt.Kind, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read kind declaration: %w", err)
	}
	var (
		k    *strukt.Kind
		diag kindfile.Diag
	)
	if isJSON(path) {
		k, diag, err = kindfile.LoadJSON(b, kindfile.Options{})
	} else {
		k, diag, err = kindfile.LoadYAML(b, kindfile.Options{})
	}
	warnAll(diag)
	if err != nil {
		if vs, ok := strukt.AsViolations(err); ok {
			for _, v := range vs {
				printViolation(v)
			}
			return nil, fmt.Errorf("kind declaration rejected (%d violation(s))", len(vs))
		}
		return nil, err
	}
	return k, nil
}

func loadDocument(path string) (strukt.Document, error) {
	if path == "" {
		return nil, fmt.Errorf("document path required (use - for stdin)")
	}
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if path != "-" && isJSON(path) {
		return kindfile.DecodeDocumentJSON(b)
	}
	if looksLikeJSON(b) {
		return kindfile.DecodeDocumentJSON(b)
	}
	return kindfile.DecodeDocumentYAML(b)
}

func parseModeFlag(s string) (strukt.ValidateOpt, error) {
	switch s {
	case "":
		return strukt.ValidateOpt{}, nil
	case "fail-fast":
		return strukt.ValidateOpt{Mode: strukt.FailFast}, nil
	case "collect-all":
		return strukt.ValidateOpt{Mode: strukt.CollectAll}, nil
	case "skip":
		return strukt.ValidateOpt{Mode: strukt.Skip}, nil
	default:
		return strukt.ValidateOpt{}, fmt.Errorf("unknown mode: %q, valid modes are: fail-fast, collect-all, skip", s)
	}
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func looksLikeJSON(b []byte) bool {
	t := strings.TrimLeft(string(b), " \t\r\n")
	return strings.HasPrefix(t, "{")
}

func warnAll(diag kindfile.Diag) {
	if diag == nil {
		return
	}
	for _, w := range diag.Warnings() {
		slog.Warn(w)
	}
}

func printViolation(v strukt.Violation) {
	at := v.Path
	if at == "" {
		at = "(document)"
	}
	fmt.Printf("%s at %s: %s\n", v.Code, at, v.Message)
	if v.Hint != "" {
		fmt.Printf("  hint: %s\n", v.Hint)
	}
}
