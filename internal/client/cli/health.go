package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cockpdf/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// ErrBackendUnhealthy is returned by Health when any component is down.
var ErrBackendUnhealthy = errors.New("backend unhealthy")

type healthCheck struct {
	name  string
	check func(context.Context) (models.Status, error)
}

// Health runs the three backend health checks concurrently and prints one
// line per component. A failing component does not cancel the others; once
// every line is printed, Health returns ErrBackendUnhealthy if any failed.
func (a *App) Health(ctx context.Context) error {
	checks := []healthCheck{
		{name: "server", check: a.api.HealthServer},
		{name: "database", check: a.api.HealthDB},
		{name: "storage", check: a.api.HealthMinio},
	}
	lines := make([]string, len(checks))

	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			st, err := c.check(ctx)
			if err != nil {
				lines[i] = fmt.Sprintf("%-9s DOWN (%s)", c.name, describeError(err))
				return ErrBackendUnhealthy
			}
			lines[i] = fmt.Sprintf("%-9s %s", c.name, healthSummary(st))
			return nil
		})
	}
	err := g.Wait()

	for _, l := range lines {
		printlnFn(l)
	}
	return err
}

// healthSummary picks the most telling field of an opaque status object.
func healthSummary(st models.Status) string {
	for _, key := range []string{"status", "message", "detail"} {
		if v := st.Get(key); v.Exists() {
			return v.String()
		}
	}
	if v := st.Get("success"); v.Exists() {
		if v.Bool() {
			return "ok"
		}
		return "failing"
	}
	return st.String()
}
