package ioc

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Container options.
type Options struct {
	// Logger receives debug events from the chain and warnings about
	// instances no cache layer claimed. Defaults to a no-op logger.
	Logger *zap.Logger
}

type Option func(*Options)

// Get default container options.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Container owns the head of a frozen resolution chain. Builder methods never
// modify a container; they return a new one whose head wraps this one's.
type Container struct {
	head Layer
	log  *zap.Logger
}

// New creates a container whose chain holds only the root, which fails every request.
func New(opts ...Option) *Container {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Container{
		head: rootLayer{},
		log:  options.Logger,
	}
}

func (c *Container) wrap(head Layer) *Container {
	return &Container{head: head, log: c.log}
}

// Resolve resolves id through the whole chain.
func (c *Container) Resolve(ctx context.Context, id ServiceID) (*Instance, error) {
	resp, err := instantiate(ctx, c.head, id)
	if err != nil {
		return nil, err
	}

	if resp.Cache != NoCache {
		c.log.Warn("instance destined for a cache that no layer claimed",
			zap.Stringer("service", id), zap.String("cache", string(resp.Cache)))
	}
	return resp.Instance, nil
}

// Variants lists the bound variants of the named service.
func (c *Container) Variants(name string) []string {
	return c.head.Variants(name)
}

func (c *Container) Head() Layer {
	return c.head
}

func (c *Container) Logger() *zap.Logger {
	return c.log
}

// Layers returns the chain from the newest layer to the root.
func (c *Container) Layers() []Layer {
	var layers []Layer
	for l := c.head; l != nil; {
		layers = append(layers, l)
		w, ok := l.(Wrapper)
		if !ok {
			break
		}
		l = w.Previous()
	}
	return layers
}

func (c *Container) String() string {
	layers := c.Layers()
	parts := make([]string, len(layers))
	for i, l := range layers {
		if s, ok := l.(interface{ String() string }); ok {
			parts[i] = s.String()
		} else {
			parts[i] = l.Kind().String()
		}
	}
	return strings.Join(parts, " -> ")
}
