// Package console implements the interactive route planner menu.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vanshika/routeplanner/internal/domain"
	"github.com/vanshika/routeplanner/internal/service"
)

// Menu options.
const (
	OptionRegister = "1"
	OptionQuery    = "2"
	OptionExit     = "3"
)

// RouteService is the subset of service.RouteService the menu drives.
type RouteService interface {
	RegisterRoute(ctx context.Context, raw string) (domain.Edge, error)
	QueryBestRoute(ctx context.Context, raw string) (domain.Path, error)
	ListRoutes(ctx context.Context) ([]domain.Edge, error)
}

// Console runs the menu loop over a line-oriented reader and a writer.
type Console struct {
	svc    RouteService
	in     *bufio.Scanner
	out    io.Writer
	styles styles
}

// New constructs a Console.
func New(svc RouteService, in io.Reader, out io.Writer) *Console {
	return &Console{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		styles: newStyles(out),
	}
}

// Run loops until the user exits, the input ends, or ctx is cancelled. Route
// errors are printed and never end the loop; only I/O and store failures do.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.printMenu()
		option, ok := c.readLine(c.styles.Prompt.Render("Option: "))
		if !ok {
			return c.in.Err()
		}

		switch strings.TrimSpace(option) {
		case OptionRegister:
			if err := c.register(ctx); err != nil {
				return err
			}
		case OptionQuery:
			if err := c.query(ctx); err != nil {
				return err
			}
		case OptionExit:
			c.println("Exiting...")
			return nil
		default:
			c.println(c.styles.Error.Render("Invalid option! Try again."))
		}
	}
}

func (c *Console) printMenu() {
	c.println("")
	c.println(c.styles.Title.Render("Choose an option:"))
	c.println("1. Register new route")
	c.println("2. Find best route")
	c.println("3. Exit")
}

func (c *Console) register(ctx context.Context) error {
	if _, err := c.printRoutes(ctx); err != nil {
		return err
	}
	c.println("")
	c.println(c.styles.Prompt.Render("Example input: GRU,BRC,10"))
	raw, ok := c.readLine("Enter the route in the format Origin,Destination,Cost: ")
	if !ok {
		return c.in.Err()
	}

	_, err := c.svc.RegisterRoute(ctx, raw)
	if err != nil {
		return c.report(service.OpRegister, err)
	}
	c.println(c.styles.Success.Render("Route registered successfully!"))
	return nil
}

func (c *Console) query(ctx context.Context) error {
	edges, err := c.printRoutes(ctx)
	if err != nil {
		return err
	}
	if len(edges) == 0 {
		return c.report(service.OpQuery, domain.ErrNoRoutes)
	}
	raw, ok := c.readLine("Enter the route in the format Origin-Destination: ")
	if !ok {
		return c.in.Err()
	}

	path, err := c.svc.QueryBestRoute(ctx, raw)
	if err != nil {
		return c.report(service.OpQuery, err)
	}
	c.println(c.styles.Result.Render("Best route: " + path.String()))
	return nil
}

func (c *Console) printRoutes(ctx context.Context) ([]domain.Edge, error) {
	edges, err := c.svc.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}
	c.println("")
	c.println(c.styles.Title.Render("Available routes:"))
	for _, edge := range edges {
		c.println(c.styles.Route.Render(edge.String()))
	}
	return edges, nil
}

// report prints a user-facing failure. Internal errors are returned instead.
func (c *Console) report(op service.Operation, err error) error {
	if domain.Category(err) == domain.CategoryInternal {
		return err
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.println(c.styles.Error.Render("Error(s):"))
		for _, v := range verr.Violations {
			c.println(c.styles.Error.Render(v.Error()))
		}
		return nil
	}
	c.println(c.styles.Error.Render(service.Describe(op, err)))
	return nil
}

func (c *Console) readLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		c.println("")
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
