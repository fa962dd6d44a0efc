package cmd

import (
	"fmt"
	"strings"

	"github.com/mwantia/cmdargs/data"
	"github.com/mwantia/cmdargs/log"
	"github.com/mwantia/cmdargs/pkg/errors"
)

// Parser resolves token streams against one Command.
// It holds no per-call state and is safe for concurrent use.
type Parser struct {
	command *Command
	numbers NumberParser
	logger  *log.Logger
}

func NewParser(command *Command, opts ...ParserOption) (*Parser, error) {
	if command == nil {
		return nil, fmt.Errorf("command cannot be nil")
	}

	options := newDefaultParserOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	return &Parser{
		command: command,
		numbers: options.Numbers,
		logger:  options.Logger.Named(command.name),
	}, nil
}

// ParseArgs parses tokens with the default number parser and no logging.
func (c *Command) ParseArgs(tokens []string) (Result, error) {
	p := &Parser{
		command: c,
		numbers: StrconvNumbers{},
	}
	return p.Parse(tokens)
}

func (p *Parser) Command() *Command {
	return p.command
}

// Parse resolves tokens, whose first element is the command name, into a
// Result holding every declared argument. The first failure aborts the parse.
//
// Required positionals are filled first and take priority over keyword lookup.
// After that, a token matching a keyword introduces that keyword's value and
// closes optional positional matching for the rest of the stream; any other
// token fills the next optional positional while that is still allowed.
func (p *Parser) Parse(tokens []string) (Result, error) {
	result, err := p.parse(tokens)
	if err != nil {
		p.logger.Debug("rejected %d tokens (%v): %v", len(tokens), errors.KindOf(err), err)
	}
	return result, err
}

func (p *Parser) parse(tokens []string) (Result, error) {
	stream := &tokenStream{tokens: tokens}

	name, ok := stream.next()
	if !ok {
		return nil, errors.Arity(p.command.name)
	}
	if !strings.EqualFold(name, p.command.name) {
		return nil, errors.NameMismatch(p.command.name, name)
	}

	result := make(Result, p.command.Len())

	requiredPos, optionalPos := 0, 0
	acceptingOptional := true

	for {
		token, ok := stream.next()
		if !ok {
			break
		}

		if requiredPos < len(p.command.required) {
			arg := p.command.required[requiredPos]
			if err := p.resolve(result, arg, token, stream); err != nil {
				return nil, err
			}

			requiredPos++
			continue
		}

		if arg, ok := p.command.keywords.Get(strings.ToLower(token)); ok {
			acceptingOptional = false

			value, ok := stream.next()
			if !ok {
				return nil, errors.Arity(arg.Name)
			}
			if err := p.resolve(result, arg, value, stream); err != nil {
				return nil, err
			}
			continue
		}

		if acceptingOptional && optionalPos < len(p.command.optional) {
			arg := p.command.optional[optionalPos]
			if err := p.resolve(result, arg, token, stream); err != nil {
				return nil, err
			}

			optionalPos++
			continue
		}

		p.logger.Debug("no slot left for token '%s' at position %d", token, stream.pos-1)
		return nil, errors.UnexpectedArgument(token)
	}

	if err := p.complete(result); err != nil {
		return nil, err
	}

	return result, nil
}

func (p *Parser) resolve(result Result, arg Arg, token string, stream *tokenStream) error {
	value, err := p.consume(arg, token, stream)
	if err != nil {
		return err
	}

	p.logger.Debug("resolved %s argument '%s' = %s", arg.Kind, arg.Name, value)
	result[arg.Name] = value
	return nil
}

// complete fills defaults and reports the first missing required argument.
// Keywords are checked in sorted order so the reported name is stable.
func (p *Parser) complete(result Result) error {
	for _, arg := range p.command.required {
		if _, ok := result[arg.Name]; !ok {
			return errors.MissingRequired(arg.Name)
		}
	}

	for _, arg := range p.command.optional {
		if _, ok := result[arg.Name]; !ok {
			result[arg.Name] = arg.Default.Clone()
		}
	}

	var missing error
	p.command.keywords.Scan(func(_ string, arg Arg) bool {
		if _, ok := result[arg.Name]; ok {
			return true
		}
		if arg.Default == nil {
			missing = errors.MissingRequired(arg.Name)
			return false
		}

		result[arg.Name] = arg.Default.Clone()
		return true
	})

	return missing
}

func (p *Parser) consume(arg Arg, token string, stream *tokenStream) (data.Value, error) {
	if !arg.Type.IsScalar() {
		return data.Value{}, errors.UnsupportedType(arg.Type.String())
	}

	switch arg.Shape {
	case Scalar:
		return p.scalar(arg, token)
	case Sequence:
		return p.sequence(arg, token, stream)
	default:
		return data.Value{}, errors.UnsupportedType(arg.Shape.String())
	}
}

func (p *Parser) sequence(arg Arg, token string, stream *tokenStream) (data.Value, error) {
	n, err := p.numbers.ParseUnsignedInteger(token)
	if err != nil {
		return data.Value{}, errors.InvalidNumericLiteral(err, arg.Name, token, "sequence length")
	}

	items := make([]data.Value, 0, min(n, uint64(stream.remaining())))
	for range n {
		next, ok := stream.next()
		if !ok {
			return data.Value{}, errors.Arity(arg.Name)
		}

		item, err := p.scalar(arg, next)
		if err != nil {
			return data.Value{}, err
		}
		items = append(items, item)
	}

	return data.Sequence(items...), nil
}

func (p *Parser) scalar(arg Arg, token string) (data.Value, error) {
	switch arg.Type {
	case data.KindText:
		return data.Text(token), nil
	case data.KindUnsigned:
		v, err := p.numbers.ParseUnsignedInteger(token)
		if err != nil {
			return data.Value{}, errors.InvalidNumericLiteral(err, arg.Name, token, arg.Type.String())
		}
		return data.Unsigned(v), nil
	case data.KindSigned:
		v, err := p.numbers.ParseInteger(token)
		if err != nil {
			return data.Value{}, errors.InvalidNumericLiteral(err, arg.Name, token, arg.Type.String())
		}
		return data.Signed(v), nil
	case data.KindFloat:
		v, err := p.numbers.ParseFloat(token)
		if err != nil {
			return data.Value{}, errors.InvalidNumericLiteral(err, arg.Name, token, arg.Type.String())
		}
		return data.Float(v), nil
	}

	return data.Value{}, errors.UnsupportedType(arg.Type.String())
}

type tokenStream struct {
	tokens []string
	pos    int
}

func (s *tokenStream) next() (string, bool) {
	if s.pos >= len(s.tokens) {
		return "", false
	}

	token := s.tokens[s.pos]
	s.pos++
	return token, true
}

func (s *tokenStream) remaining() int {
	return len(s.tokens) - s.pos
}
