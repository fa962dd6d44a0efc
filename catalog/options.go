package catalog

import (
	"fmt"

	"github.com/mwantia/cmdargs/cmd"
	"github.com/mwantia/cmdargs/log"
)

type CatalogOptions struct {
	Numbers cmd.NumberParser
	Logger  *log.Logger
}

type CatalogOption func(*CatalogOptions) error

func newDefaultCatalogOptions() *CatalogOptions {
	return &CatalogOptions{
		Numbers: cmd.StrconvNumbers{},
	}
}

// WithNumberParser sets the parser used for string defaults of numeric arguments.
func WithNumberParser(numbers cmd.NumberParser) CatalogOption {
	return func(opts *CatalogOptions) error {
		if numbers == nil {
			return fmt.Errorf("number parser cannot be nil")
		}
		opts.Numbers = numbers
		return nil
	}
}

func WithLogger(logger *log.Logger) CatalogOption {
	return func(opts *CatalogOptions) error {
		opts.Logger = logger
		return nil
	}
}
