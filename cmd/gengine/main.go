// Command gengine evaluates scene scripts into meshes.
//
//	gengine [-config file] eval [-o out.json] script.gel
//	gengine [-config file] serve
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chazu/gengine/pkg/config"
)

var errEvalFailed = errors.New("evaluation reported errors")

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `usage:
  gengine [-config file] eval [-o out.json] script.gel   evaluate a script to JSON ("-" reads stdin)
  gengine [-config file] serve [-addr host:port]         serve the websocket preview on /ws

flags:
`)
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "YAML or JSON config file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "eval":
		err = runEval(ctx, cfg, args, os.Stdin, os.Stdout)
	case "serve":
		err = runServe(ctx, cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "gengine:", err)
		os.Exit(1)
	}
}

func runEval(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	out := fs.String("o", "", "write JSON here instead of stdout")
	horizon := fs.Bool("horizon", cfg.Horizon, "append the horizon sphere")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("eval takes exactly one script, got %d", fs.NArg())
	}
	cfg.Horizon = *horizon

	var source []byte
	var err error
	if path := fs.Arg(0); path == "-" {
		source, err = io.ReadAll(stdin)
	} else {
		source, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}

	a, cleanup, err := initializeApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result := a.Evaluate(ctx, string(source))

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if !result.OK() {
		return errEvalFailed
	}
	return nil
}

func runServe(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", cfg.ListenAddr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.ListenAddr = *addr

	srv, cleanup, err := initializeServer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return srv.ListenAndServe(ctx)
}
