package catalog

import (
	"fmt"
	"math"

	"github.com/mwantia/cmdargs/cmd"
	"github.com/mwantia/cmdargs/data"
	"github.com/mwantia/cmdargs/pkg/errors"
)

func compileCommand(def CommandDefinition, numbers cmd.NumberParser) (*cmd.Command, error) {
	var errs data.Errors

	builder := cmd.NewBuilder(def.Name).Description(def.Description)
	for _, argDef := range def.Args {
		arg, err := compileArg(argDef, numbers)
		if err != nil {
			errs.Add(fmt.Errorf("argument '%s': %w", argDef.Name, err))
			continue
		}
		builder.AddArg(arg)
	}

	if err := errs.Errors(); err != nil {
		return nil, err
	}

	command := builder.Build()
	if err := command.Validate(); err != nil {
		return nil, err
	}
	return command, nil
}

func compileArg(def ArgDefinition, numbers cmd.NumberParser) (cmd.Arg, error) {
	kind, err := cmd.ParseArgKind(def.Kind)
	if err != nil {
		return cmd.Arg{}, err
	}

	typ, err := data.ParseKind(def.Type)
	if err != nil {
		return cmd.Arg{}, err
	}

	shape := cmd.Scalar
	if def.Sequence {
		shape = cmd.Sequence
	}

	var value *data.Value
	if def.Default != nil {
		v, err := convertDefault(def.Name, def.Default, typ, def.Sequence, numbers)
		if err != nil {
			return cmd.Arg{}, fmt.Errorf("invalid default: %w", err)
		}
		value = &v
	}

	return cmd.NewArg(def.Name, def.Description, kind, typ, shape, value), nil
}

// convertDefault turns a loosely decoded default into a value of the declared type.
// Decoders yield int (yaml), int64 (toml), uint64 (yaml, above MaxInt64), float64
// and string; strings are parsed like tokens so "1" works for any numeric type.
func convertDefault(name string, raw any, typ data.Kind, sequence bool, numbers cmd.NumberParser) (data.Value, error) {
	if !sequence {
		return convertScalar(name, raw, typ, numbers)
	}

	list, ok := raw.([]any)
	if !ok {
		return data.Value{}, errors.TypeMismatch(fmt.Sprint(raw), data.KindSequence.String())
	}

	items := make([]data.Value, 0, len(list))
	for _, item := range list {
		v, err := convertScalar(name, item, typ, numbers)
		if err != nil {
			return data.Value{}, err
		}
		items = append(items, v)
	}
	return data.Sequence(items...), nil
}

func convertScalar(name string, raw any, typ data.Kind, numbers cmd.NumberParser) (data.Value, error) {
	if s, ok := raw.(string); ok {
		return parseScalar(name, s, typ, numbers)
	}

	switch typ {
	case data.KindUnsigned:
		switch n := raw.(type) {
		case int:
			if n >= 0 {
				return data.Unsigned(uint64(n)), nil
			}
		case int64:
			if n >= 0 {
				return data.Unsigned(uint64(n)), nil
			}
		case uint64:
			return data.Unsigned(n), nil
		}
	case data.KindSigned:
		switch n := raw.(type) {
		case int:
			return data.Signed(int64(n)), nil
		case int64:
			return data.Signed(n), nil
		case uint64:
			if n <= math.MaxInt64 {
				return data.Signed(int64(n)), nil
			}
		}
	case data.KindFloat:
		switch n := raw.(type) {
		case float64:
			return data.Float(n), nil
		case int:
			return data.Float(float64(n)), nil
		case int64:
			return data.Float(float64(n)), nil
		case uint64:
			return data.Float(float64(n)), nil
		}
	}

	return data.Value{}, errors.TypeMismatch(fmt.Sprint(raw), typ.String())
}

func parseScalar(name, s string, typ data.Kind, numbers cmd.NumberParser) (data.Value, error) {
	switch typ {
	case data.KindText:
		return data.Text(s), nil
	case data.KindUnsigned:
		n, err := numbers.ParseUnsignedInteger(s)
		if err != nil {
			return data.Value{}, errors.InvalidNumericLiteral(err, name, s, typ.String())
		}
		return data.Unsigned(n), nil
	case data.KindSigned:
		n, err := numbers.ParseInteger(s)
		if err != nil {
			return data.Value{}, errors.InvalidNumericLiteral(err, name, s, typ.String())
		}
		return data.Signed(n), nil
	case data.KindFloat:
		n, err := numbers.ParseFloat(s)
		if err != nil {
			return data.Value{}, errors.InvalidNumericLiteral(err, name, s, typ.String())
		}
		return data.Float(n), nil
	}

	return data.Value{}, errors.UnsupportedType(typ.String())
}
