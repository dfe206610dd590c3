package tracing

import (
	"context"
	"io"

	"github.com/sagarc03/lakegate"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentFactory wraps factory so every storage call runs in a client span.
func InstrumentFactory(factory lakegate.StorageClientFactory, tp trace.TracerProvider) lakegate.StorageClientFactory {
	return &tracedFactory{next: factory, tracer: tp.Tracer(instrumentationName + "/storage")}
}

type tracedFactory struct {
	next   lakegate.StorageClientFactory
	tracer trace.Tracer
}

func (f *tracedFactory) NewClient(ctx context.Context, account string) (lakegate.StorageClient, error) {
	ctx, span := f.tracer.Start(ctx, "storage.connect",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("lakegate.account", account)),
	)
	defer span.End()

	client, err := f.next.NewClient(ctx, account)
	if err != nil {
		record(span, err)
		return nil, err
	}
	return &tracedClient{next: client, tracer: f.tracer}, nil
}

type tracedClient struct {
	next   lakegate.StorageClient
	tracer trace.Tracer
}

func (c *tracedClient) start(ctx context.Context, op string, container lakegate.Container, name string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String("lakegate.account", c.next.Account())}
	if container != "" {
		attrs = append(attrs, attribute.String("lakegate.container", string(container)))
	}
	if name != "" {
		attrs = append(attrs, attribute.String("lakegate.file", name))
	}
	return c.tracer.Start(ctx, "storage."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func record(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func (c *tracedClient) Account() string {
	return c.next.Account()
}

func (c *tracedClient) Upload(ctx context.Context, container lakegate.Container, name string, content []byte) error {
	ctx, span := c.start(ctx, "upload", container, name)
	defer span.End()
	span.SetAttributes(attribute.Int("lakegate.bytes", len(content)))

	err := c.next.Upload(ctx, container, name, content)
	record(span, err)
	return err
}

func (c *tracedClient) List(ctx context.Context, container lakegate.Container) ([]lakegate.FileEntry, error) {
	ctx, span := c.start(ctx, "list", container, "")
	defer span.End()

	entries, err := c.next.List(ctx, container)
	record(span, err)
	span.SetAttributes(attribute.Int("lakegate.count", len(entries)))
	return entries, err
}

func (c *tracedClient) Exists(ctx context.Context, container lakegate.Container, name string) (bool, error) {
	ctx, span := c.start(ctx, "exists", container, name)
	defer span.End()

	ok, err := c.next.Exists(ctx, container, name)
	record(span, err)
	span.SetAttributes(attribute.Bool("lakegate.exists", ok))
	return ok, err
}

func (c *tracedClient) Read(ctx context.Context, container lakegate.Container, name string) (io.ReadCloser, error) {
	ctx, span := c.start(ctx, "read", container, name)
	defer span.End()

	rc, err := c.next.Read(ctx, container, name)
	record(span, err)
	return rc, err
}

func (c *tracedClient) Ping(ctx context.Context) error {
	ctx, span := c.start(ctx, "ping", "", "")
	defer span.End()

	err := c.next.Ping(ctx)
	record(span, err)
	return err
}

func (c *tracedClient) Close() error {
	return c.next.Close()
}
