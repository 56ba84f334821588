package ioc

import (
	"context"
	"io"
	"strings"
	"testing"
)

func addServicesWithProvide(c *Container, bind func(*Container, ServiceID, Factory, ...BindOption) *Container) *Container {
	c = bind(c, ServiceOf[io.Reader](), Provide(func(context.Context, Resolver) (io.Reader, error) {
		return strings.NewReader(""), nil
	}))
	c = bind(c, ServiceOf[io.Writer](), Provide(func(context.Context, Resolver) (io.Writer, error) {
		return &strings.Builder{}, nil
	}))
	return bind(c, ServiceOf[io.ReadWriter](), Provide(readWriterFactory))
}

func addServicesWithConstructor(c *Container) *Container {
	c = AddTransient[io.ReadWriter](c, Constructor(
		func(r io.Reader, w io.Writer) *readWriter { return &readWriter{Reader: r, Writer: w} }))
	c = AddTransient[io.Reader](c, Constructor(func() *strings.Reader { return strings.NewReader("") }))
	return AddTransient[io.Writer](c, Constructor(func() *strings.Builder { return &strings.Builder{} }))
}

func buildContainer(mode string) *Container {
	c := New()
	switch mode {
	case "transient":
		return addServicesWithProvide(c, (*Container).WithTransient)
	case "singleton":
		return addServicesWithProvide(c, (*Container).WithSingleton)
	case "constructor":
		return addServicesWithConstructor(c)
	case "cached":
		c = addServicesWithProvide(c, func(c *Container, id ServiceID, f Factory, opts ...BindOption) *Container {
			return c.WithTransient(id, f, InCache("bench"))
		})
		return c.WithCache("bench")
	default:
		panic("unknown mode " + mode)
	}
}

func benchmarkResolve(b *testing.B, mode string) {
	c := buildContainer(mode)
	ctx := context.Background()
	id := ServiceOf[io.ReadWriter]()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Resolve(ctx, id); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResolve_Transient(b *testing.B) {
	benchmarkResolve(b, "transient")
}

func BenchmarkResolve_Singleton(b *testing.B) {
	benchmarkResolve(b, "singleton")
}

func BenchmarkResolve_Constructor(b *testing.B) {
	benchmarkResolve(b, "constructor")
}

func BenchmarkResolve_Cached(b *testing.B) {
	benchmarkResolve(b, "cached")
}

func BenchmarkResolve_SingletonParallel(b *testing.B) {
	c := buildContainer("singleton")
	id := ServiceOf[io.ReadWriter]()

	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			if _, err := c.Resolve(ctx, id); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
