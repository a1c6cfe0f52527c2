package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dbejarano820/starknet-jsonrpc-codegen/gen"
	"github.com/dbejarano820/starknet-jsonrpc-codegen/spec"
)

func main() {
	app := cli.NewApp()
	app.Name = "rpcgen"
	app.Usage = "generate Go definitions for the Starknet JSON-RPC API"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     "spec",
			Usage:    "spec version to generate for (0.1.0, 0.2.1 or 0.3.0)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "package",
			Usage: "package clause of the generated file",
			Value: "rpc",
		},
	}
	app.Action = run
	app.RunAndExitOnError()
}

func run(cctx *cli.Context) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	version, err := gen.ParseSpecVersion(cctx.String("spec"))
	if err != nil {
		return err
	}

	core, write, err := spec.EmbeddedPair(version.String())
	if err != nil {
		return err
	}

	coreSpec, err := spec.Parse(core)
	if err != nil {
		return fmt.Errorf("parsing core document: %w", err)
	}
	writeSpec, err := spec.Parse(write)
	if err != nil {
		return fmt.Errorf("parsing write document: %w", err)
	}
	spec.Merge(coreSpec, writeSpec)

	result, err := gen.Resolve(coreSpec, gen.ProfileForVersion(version))
	if err != nil {
		return err
	}

	return gen.Render(os.Stdout, result, gen.RenderOptions{
		Package: cctx.String("package"),
	})
}
