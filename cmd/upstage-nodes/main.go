package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/internal/host"
	"github.com/checkmarble/upstage-nodes/nodes"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := command().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func command() *cli.Command {
	return &cli.Command{
		Name:  "upstage-nodes",
		Usage: "Run Upstage workflow nodes over JSONL items",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Upstage API key",
				Sources: cli.EnvVars("UPSTAGE_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Upstage API base URL",
				Value:   upstage.DefaultBaseUrl,
				Sources: cli.EnvVars("UPSTAGE_BASE_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			supplyCommand(),
			describeCommand(),
			checkCommand(),
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Execute a node over the items of a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "node", Usage: "Node name", Required: true},
			&cli.StringFlag{Name: "params", Usage: "Path to a JSON file holding the node parameters"},
			&cli.StringFlag{Name: "input", Usage: "Input JSONL file, - for stdin", Value: "-"},
			&cli.StringFlag{Name: "output", Usage: "Output JSONL file, - for stdout", Value: "-"},
			&cli.BoolFlag{Name: "continue-on-fail", Usage: "Emit an error item instead of aborting on failure"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, logger, err := newClient(cmd)
			if err != nil {
				return err
			}

			node, err := nodes.New(client).Get(cmd.String("node"))
			if err != nil {
				return err
			}

			params, err := readParams(cmd.String("params"))
			if err != nil {
				return err
			}

			in, baseDir, err := openInput(cmd.String("input"))
			if err != nil {
				return err
			}
			defer in.Close()

			loader := host.NewLoader(host.WithBaseDir(baseDir), host.WithLogger(logger))
			defer loader.Close()

			mem, err := loader.Load(ctx, in, params)
			if err != nil {
				return err
			}

			mem.ContinueOnFailure = cmd.Bool("continue-on-fail")

			logger.Info("executing node", "node", cmd.String("node"), "items", len(mem.Items))

			outputs, err := node.Execute(ctx, mem)
			if err != nil {
				logger.Error("node execution failed", "kind", upstage.Kind(err), "error", err)

				return err
			}

			out, err := openOutput(cmd.String("output"))
			if err != nil {
				return err
			}
			defer out.Close()

			return host.WriteOutputs(out, outputs)
		},
	}
}

func supplyCommand() *cli.Command {
	return &cli.Command{
		Name:  "supply",
		Usage: "Build a model from a supply node and run it against text",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "node", Usage: "Supply node name", Required: true},
			&cli.StringFlag{Name: "params", Usage: "Path to a JSON file holding the node parameters"},
			&cli.StringSliceFlag{Name: "text", Usage: "Prompt for a chat model, or text to embed (repeatable)", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, _, err := newClient(cmd)
			if err != nil {
				return err
			}

			node, err := nodes.New(client).Supplier(cmd.String("node"))
			if err != nil {
				return err
			}

			params, err := readParams(cmd.String("params"))
			if err != nil {
				return err
			}

			supplied, err := node.SupplyData(ctx, host.NewMemory(params, upstage.Item{}), 0)
			if err != nil {
				return err
			}

			texts := cmd.StringSlice("text")

			switch model := supplied.(type) {
			case embeddings.Embedder:
				vectors, err := model.EmbedDocuments(ctx, texts)
				if err != nil {
					return err
				}

				return json.NewEncoder(os.Stdout).Encode(vectors)

			case llms.Model:
				completion, err := llms.GenerateFromSinglePrompt(ctx, model, strings.Join(texts, "\n"))
				if err != nil {
					return err
				}

				fmt.Println(completion)

				return nil
			}

			return errors.Newf("node %q supplied an unsupported %T", cmd.String("node"), supplied)
		},
	}
}

func describeCommand() *cli.Command {
	return &cli.Command{
		Name:  "describe",
		Usage: "Print node descriptions as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "node", Usage: "Only describe this node"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			registry := nodes.New(nil)
			descriptions := registry.Describe()

			if name := cmd.String("node"); name != "" {
				descriptions = lo.Filter(descriptions, func(d upstage.Description, _ int) bool {
					return d.Name == name
				})

				if len(descriptions) == 0 {
					return errors.Mark(errors.Newf("no node named %q", name), nodes.ErrUnknownNode)
				}
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(descriptions)
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Verify the configured Upstage credentials",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, logger, err := newClient(cmd)
			if err != nil {
				return err
			}

			if err := client.CheckCredentials(ctx); err != nil {
				return err
			}

			logger.Info("credentials are valid", "base_url", client.BaseUrl())

			return nil
		},
	}
}

func newClient(cmd *cli.Command) (*upstage.Client, *log.Logger, error) {
	level, err := log.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalid log level")
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	client, err := upstage.New(
		upstage.WithApiKey(cmd.String("api-key")),
		upstage.WithBaseUrl(cmd.String("base-url")),
		upstage.WithHttpClient(&http.Client{Transport: http.DefaultTransport}),
		upstage.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}

	return client, logger, nil
}

func readParams(path string) (map[string]any, error) {
	params := map[string]any{}

	if path == "" {
		return params, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read parameters file")
	}

	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, errors.Wrap(err, "parameters file must hold a JSON object")
	}

	return params, nil
}

func openInput(path string) (io.ReadCloser, string, error) {
	if path == "-" {
		cwd, _ := os.Getwd()

		return io.NopCloser(os.Stdin), cwd, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "could not open input")
	}

	return f, filepath.Dir(path), nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not create output")
	}

	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
