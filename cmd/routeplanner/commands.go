package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanshika/routeplanner/internal/app"
	"github.com/vanshika/routeplanner/internal/config"
	"github.com/vanshika/routeplanner/internal/console"
	"github.com/vanshika/routeplanner/internal/domain"
	"github.com/vanshika/routeplanner/internal/generator"
	"github.com/vanshika/routeplanner/internal/repository"
	"github.com/vanshika/routeplanner/internal/service"
)

// userError is a rejected request. Its message is already user-facing.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// asUserError converts route errors to their display message. Internal
// failures pass through unchanged.
func asUserError(op service.Operation, err error) error {
	if err == nil || domain.Category(err) == domain.CategoryInternal {
		return err
	}
	return &userError{msg: service.Describe(op, err), err: err}
}

type cli struct {
	configPath string
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "routeplanner",
		Short:         "Find the cheapest route between two locations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMenu(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv("ROUTEPLANNER_CONFIG"), "Config file path (yaml, json, or toml)")

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMenu(cmd.Context())
		},
	}

	registerCmd := &cobra.Command{
		Use:     "register ORIGIN,DESTINATION,COST",
		Short:   "Register a new route",
		Example: "  routeplanner register GRU,BRC,10",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				edge, err := a.Service.RegisterRoute(ctx, args[0])
				if err != nil {
					return asUserError(service.OpRegister, err)
				}
				fmt.Fprintf(c.out, "Route registered successfully! %s\n", edge)
				return nil
			})
		},
	}

	bestCmd := &cobra.Command{
		Use:     "best ORIGIN-DESTINATION",
		Short:   "Find the cheapest route between two locations",
		Example: "  routeplanner best GRU-CDG",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				path, err := a.Service.QueryBestRoute(ctx, args[0])
				if err != nil {
					return asUserError(service.OpQuery, err)
				}
				fmt.Fprintf(c.out, "Best route: %s\n", path)
				return nil
			})
		},
	}

	var listFormat string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every stored route",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				edges, err := a.Service.ListRoutes(ctx)
				if err != nil {
					return err
				}
				return writeRouteList(c.out, listFormat, edges)
			})
		},
	}
	listCmd.Flags().StringVar(&listFormat, "format", "text", "Output format: text, csv, or json")

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Register every route in a routes file (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				return c.runImport(ctx, a, args[0])
			})
		},
	}

	var (
		seedCfg    = generator.DefaultConfig()
		seedOutput string
		seedFormat string
	)
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a random route network",
		Long: "Generate a random route network. With --output the network is written to a file; " +
			"otherwise it is registered in the configured store.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSeed(cmd.Context(), seedCfg, seedOutput, seedFormat)
		},
	}
	seedCmd.Flags().IntVar(&seedCfg.Locations, "locations", seedCfg.Locations, "Number of distinct location codes")
	seedCmd.Flags().IntVar(&seedCfg.Routes, "routes", seedCfg.Routes, "Number of routes to generate")
	seedCmd.Flags().IntVar(&seedCfg.MaxCost, "max-cost", seedCfg.MaxCost, "Upper bound for route costs")
	seedCmd.Flags().Float64Var(&seedCfg.ChainChance, "chain-chance", seedCfg.ChainChance, "Probability a route continues from the previous destination")
	seedCmd.Flags().Int64Var(&seedCfg.Seed, "seed", seedCfg.Seed, "Random seed (0 picks one from the clock)")
	seedCmd.Flags().StringVar(&seedOutput, "output", "", "Write the network to this file instead of the store (- for stdout)")
	seedCmd.Flags().StringVar(&seedFormat, "format", "routes", "Output format with --output: routes or json")

	var servePort int
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if servePort > 0 {
					a.Config.HTTP.Port = servePort
				}
				return a.Serve(ctx)
			})
		},
	}
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Override the configured HTTP port")

	root.AddCommand(menuCmd, registerCmd, bestCmd, listCmd, importCmd, seedCmd, serveCmd)
	return root
}

func (c *cli) withApp(ctx context.Context, fn func(context.Context, *app.App) error) (err error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, app.Options{LogOutput: c.errOut, TraceOutput: c.errOut})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(context.WithoutCancel(ctx)); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return fn(ctx, a)
}

func (c *cli) runMenu(ctx context.Context) error {
	return c.withApp(ctx, func(ctx context.Context, a *app.App) error {
		return console.New(a.Service, c.in, c.out).Run(ctx)
	})
}

func (c *cli) runImport(ctx context.Context, a *app.App, path string) error {
	var r io.Reader = c.in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	report, err := a.Service.ImportRoutes(ctx, r)
	fmt.Fprintf(c.out, "Imported %d routes, rejected %d.\n", report.Imported, report.Rejected)

	var importErr *service.ImportError
	if errors.As(err, &importErr) {
		for _, lineErr := range importErr.Errors {
			fmt.Fprintf(c.errOut, "line %d: %s\n", lineErr.Line, service.Describe(service.OpRegister, lineErr.Err))
		}
		return &userError{msg: fmt.Sprintf("%d routes were rejected", len(importErr.Errors)), err: err}
	}
	return err
}

func (c *cli) runSeed(ctx context.Context, cfg generator.Config, output, format string) error {
	network, err := generator.New(cfg).Generate(ctx)
	if err != nil {
		return fmt.Errorf("generate network: %w", err)
	}

	if output != "" {
		return writeNetwork(c.out, output, format, network)
	}

	return c.withApp(ctx, func(ctx context.Context, a *app.App) error {
		stored, skipped := 0, 0
		for _, edge := range network.Routes {
			if _, err := a.Service.RegisterEdge(ctx, edge); err != nil {
				if errors.Is(err, domain.ErrDuplicateEdge) {
					skipped++
					continue
				}
				return err
			}
			stored++
		}
		fmt.Fprintf(c.out, "Seeded %d routes across %d locations (%d already present).\n", stored, len(network.Locations), skipped)
		return nil
	})
}

func writeNetwork(stdout io.Writer, output, format string, network generator.Network) error {
	write := func(w io.Writer) error {
		switch format {
		case "routes":
			return generator.WriteRoutes(w, network.Routes)
		case "json":
			return generator.WriteJSON(w, network)
		default:
			return fmt.Errorf("unknown seed format %q", format)
		}
	}

	if output == "-" {
		return write(stdout)
	}

	if format == "routes" {
		if err := generator.WriteRoutesFile(output, network.Routes); err != nil {
			return err
		}
	} else {
		var buf bytes.Buffer
		if err := write(&buf); err != nil {
			return err
		}
		if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
	}
	fmt.Fprintf(stdout, "Generated %d routes across %d locations into %s\n", len(network.Routes), len(network.Locations), output)
	return nil
}

func writeRouteList(w io.Writer, format string, edges []domain.Edge) error {
	switch strings.ToLower(format) {
	case "", "text":
		fmt.Fprintln(w, "Available routes:")
		for _, edge := range edges {
			fmt.Fprintln(w, edge)
		}
		return nil
	case "csv":
		writer := csv.NewWriter(w)
		if err := writer.Write(strings.Split(repository.RecordHeader, ",")); err != nil {
			return err
		}
		for _, edge := range edges {
			if err := writer.Write([]string{edge.Origin, edge.Destination, strconv.Itoa(edge.Cost)}); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()
	case "json":
		if edges == nil {
			edges = []domain.Edge{}
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(edges)
	default:
		return fmt.Errorf("unknown list format %q", format)
	}
}
