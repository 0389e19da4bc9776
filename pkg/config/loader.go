package config

import (
	"bytes"
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/senenv/shellmenu/api"
	"github.com/senenv/shellmenu/api/v1beta1"
	"github.com/senenv/shellmenu/pkg/yaml"
)

const tracerName = "github.com/senenv/shellmenu/pkg/config"

// Validator validates configuration data against a schema.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*loaderOptions)

type loaderOptions struct {
	validator Validator
	colored   bool
}

// WithValidator replaces the default validator. A nil validator disables
// schema validation.
func WithValidator(v Validator) LoaderOpt {
	return func(o *loaderOptions) {
		o.validator = v
	}
}

// WithColor renders annotated source in errors with ANSI colors.
func WithColor(colored bool) LoaderOpt {
	return func(o *loaderOptions) {
		o.colored = colored
	}
}

// Loader decodes, validates and defaults a configuration of type T.
type Loader[T v1beta1.Object] struct {
	validator Validator
	newFunc   func() T
	yamlError *yaml.ErrorWrapper
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] for data.
// The newFunc parameter is the constructor for type T (e.g., configs.New).
func NewLoaderFromBytes[T v1beta1.Object](
	data []byte,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) *Loader[T] {
	options := &loaderOptions{
		validator: defaultValidator,
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Loader[T]{
		data:      data,
		newFunc:   newFunc,
		validator: options.validator,
		yamlError: yaml.NewErrorWrapper(
			yaml.WithSource(data),
			yaml.WithColor(options.colored),
		),
	}
}

// NewLoaderFromFile creates a [Loader] for the file at path.
func NewLoaderFromFile[T v1beta1.Object](
	path string,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) (*Loader[T], error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	return NewLoaderFromBytes(data, newFunc, defaultValidator, opts...), nil
}

// Validate checks the data against the schema.
func (l *Loader[T]) Validate() error {
	var anyConfig any

	err := yaml.NewDecoder(bytes.NewReader(l.data)).Decode(&anyConfig)
	if err != nil {
		return l.yamlError.Wrap(err)
	}

	if l.validator != nil {
		err = l.validator.Validate(anyConfig)
		if err != nil {
			return l.yamlError.Wrap(err)
		}
	}

	return nil
}

// Load decodes the data into a new T, applies defaults and validates the
// result. It does not run the schema validator; call [Loader.Validate] first.
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) Load() (T, error) {
	var zero T

	cfg := l.newFunc()

	err := yaml.NewDecoder(bytes.NewReader(l.data)).Decode(cfg)
	if err != nil {
		return zero, l.yamlError.Wrap(err)
	}

	cfg.EnsureDefaults()

	err = cfg.Validate()
	if err != nil {
		return zero, fmt.Errorf("invalid %s: %w", cfg.GetKind(), err)
	}

	return cfg, nil
}

// Data returns the raw configuration bytes.
func (l *Loader[T]) Data() []byte {
	return l.data
}

// LoadFile reads, validates and loads the file at path.
//
//nolint:ireturn // Generic type parameter return is intentional.
func LoadFile[T v1beta1.Object](
	ctx context.Context,
	path string,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) (T, error) {
	var zero T

	_, span := otel.Tracer(tracerName).Start(ctx, "load config",
		trace.WithAttributes(attribute.String("path", path)),
	)
	defer span.End()

	l, err := NewLoaderFromFile(path, newFunc, defaultValidator, opts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")

		return zero, err
	}

	err = l.Validate()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")

		return zero, err
	}

	cfg, err := l.Load()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")

		return zero, err
	}

	return cfg, nil
}
