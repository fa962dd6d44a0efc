package cmd

import (
	"fmt"

	"github.com/mwantia/cmdargs/log"
)

type ParserOptions struct {
	Numbers NumberParser
	Logger  *log.Logger
}

type ParserOption func(*ParserOptions) error

func newDefaultParserOptions() *ParserOptions {
	return &ParserOptions{
		Numbers: StrconvNumbers{},
	}
}

func WithNumberParser(numbers NumberParser) ParserOption {
	return func(opts *ParserOptions) error {
		if numbers == nil {
			return fmt.Errorf("number parser cannot be nil")
		}
		opts.Numbers = numbers
		return nil
	}
}

// WithLogger enables debug tracing of every resolution step.
func WithLogger(logger *log.Logger) ParserOption {
	return func(opts *ParserOptions) error {
		opts.Logger = logger
		return nil
	}
}
