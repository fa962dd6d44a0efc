package cmd

import (
	"fmt"
	"strings"

	"github.com/mwantia/cmdargs/data"
	"github.com/mwantia/cmdargs/pkg/errors"
)

// Validate reports every schema authoring problem at once: empty names,
// names used by more than one argument, undeclarable types and defaults
// that do not match the declared type and shape.
// Parsing never calls Validate; invalid types are still rejected at parse time.
func (c *Command) Validate() error {
	var errs data.Errors

	if strings.TrimSpace(c.name) == "" {
		errs.Add(fmt.Errorf("command name cannot be empty"))
	}

	seen := make(map[string]struct{}, c.Len())
	for _, arg := range c.Args() {
		if strings.TrimSpace(arg.Name) == "" {
			errs.Add(fmt.Errorf("%s: argument name cannot be empty", c.name))
			continue
		}

		key := strings.ToLower(arg.Name)
		if _, exists := seen[key]; exists {
			errs.Add(fmt.Errorf("%s: argument '%s' declared more than once", c.name, arg.Name))
		}
		seen[key] = struct{}{}

		if arg.Shape == Sequence && arg.Type == data.KindInvalid && arg.HasDefault() && arg.Default.Len() == 0 {
			errs.Add(fmt.Errorf("%s: argument '%s': %w: an empty sequence default needs an explicit element type",
				c.name, arg.Name, errors.UnsupportedType(arg.Type.String())))
			continue
		}
		if !arg.Type.IsScalar() {
			errs.Add(fmt.Errorf("%s: argument '%s': %w", c.name, arg.Name, errors.UnsupportedType(arg.Type.String())))
			continue
		}
		if arg.Shape != Scalar && arg.Shape != Sequence {
			errs.Add(fmt.Errorf("%s: argument '%s': %w", c.name, arg.Name, errors.UnsupportedType(arg.Shape.String())))
			continue
		}

		if err := arg.checkDefault(); err != nil {
			errs.Add(fmt.Errorf("%s: argument '%s': invalid default: %w", c.name, arg.Name, err))
		}
	}

	return errs.Errors()
}

func (a Arg) checkDefault() error {
	if a.Default == nil {
		return nil
	}

	if a.Shape == Scalar {
		if a.Default.Kind() != a.Type {
			return errors.TypeMismatch(a.Default.String(), a.Type.String())
		}
		return nil
	}

	if a.Default.Homogeneous(a.Type) {
		return nil
	}

	// Report the first offending element.
	items, err := a.Default.AsSequence()
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.Kind() != a.Type {
			return errors.TypeMismatch(item.String(), a.Type.String())
		}
	}
	return nil
}
