package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dozm/ioc"
)

const requestCache ioc.CacheName = "request"

var (
	hitsService    = ioc.Service("hits")
	visitService   = ioc.Service("visit")
	greeterService = ioc.Service("greeter")
)

// Greeter is the demo payload, built per resolve from the app config and the request visit.
type Greeter struct {
	Greeting string
	App      string
	Visit    int64
}

func (g *Greeter) String() string {
	return fmt.Sprintf("%s from %s (visit %d)", g.Greeting, g.App, g.Visit)
}

func greeter(greeting string) ioc.Factory {
	return ioc.Provide(func(ctx context.Context, r ioc.Resolver) (*Greeter, error) {
		cfg, err := ioc.TryGet[*Config](ctx, r, ioc.ServiceOf[*Config]())
		if err != nil {
			return nil, err
		}
		visit, err := ioc.TryGet[int64](ctx, r, visitService)
		if err != nil {
			return nil, err
		}
		return &Greeter{Greeting: greeting, App: cfg.AppName, Visit: visit}, nil
	})
}

// compose builds the application container. Bindings destined for the
// request cache are claimed by the layer withRequestScope adds per request.
func compose(cfg *Config, logger *zap.Logger) *ioc.Container {
	c := ioc.New(ioc.WithLogger(logger)).
		WithTransient(greeterService, greeter("Hello")).
		WithTransient(ioc.ServiceVariant(greeterService.Name, "formal"), greeter("Good day")).
		WithTransient(ioc.ServiceVariant(greeterService.Name, "casual"), greeter("Hey"))

	if cfg.GreeterVariant != "" {
		c = c.WithRedirects(ioc.NewRedirectRules().Variant("", cfg.GreeterVariant))
	}

	c = ioc.AddInstance(c, cfg)
	c = ioc.AddInstance(c, logger)
	c = c.WithSingleton(hitsService, ioc.Provide(func(context.Context, ioc.Resolver) (*atomic.Int64, error) {
		return &atomic.Int64{}, nil
	}))
	return c.WithTransient(visitService, ioc.Provide(func(ctx context.Context, r ioc.Resolver) (int64, error) {
		hits, err := ioc.TryGet[*atomic.Int64](ctx, r, hitsService)
		if err != nil {
			return 0, err
		}
		return hits.Add(1), nil
	}), ioc.InCache(requestCache))
}

func withRequestScope(c *ioc.Container) *ioc.Container {
	return c.WithCache(requestCache)
}
