package vdir

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/text/language"
)

type Options struct {
	// FlattenInitialDirectory is copied into every archive root opened
	// through the registry.
	FlattenInitialDirectory bool
	// ContentDetection lets Open sniff file headers when the file name
	// carries no registered extension.
	ContentDetection bool
	Collation        language.Tag
	Logger           hclog.Logger
}

type Option func(*Options) error

func newDefaultOptions() *Options {
	return &Options{
		FlattenInitialDirectory: true,
		Collation:               language.English,
		Logger:                  hclog.NewNullLogger(),
	}
}

func WithFlattenInitialDirectory(flatten bool) Option {
	return func(opts *Options) error {
		opts.FlattenInitialDirectory = flatten
		return nil
	}
}

func WithContentDetection(detect bool) Option {
	return func(opts *Options) error {
		opts.ContentDetection = detect
		return nil
	}
}

func WithCollation(tag language.Tag) Option {
	return func(opts *Options) error {
		opts.Collation = tag
		return nil
	}
}

func WithLogger(logger hclog.Logger) Option {
	return func(opts *Options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		opts.Logger = logger
		return nil
	}
}
