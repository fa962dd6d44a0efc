package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/btree"
	"gopkg.in/yaml.v3"

	"github.com/mwantia/cmdargs/cmd"
	"github.com/mwantia/cmdargs/data"
	"github.com/mwantia/cmdargs/log"
	"github.com/mwantia/cmdargs/store"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the decoder by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}

	return "", fmt.Errorf("unsupported schema file extension '%s'", filepath.Ext(path))
}

// Catalog is a read-only set of commands indexed by lower-cased name.
type Catalog struct {
	commands *btree.Map[string, *cmd.Command]
	logger   *log.Logger
}

// Load reads and compiles a schema file.
func Load(path string, opts ...CatalogOption) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	c, err := Parse(content, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema file %s: %w", path, err)
	}

	c.logger.Info("loaded %d commands from '%s'", c.Len(), path)
	return c, nil
}

// Fetch reads and compiles the schema document stored under key.
// The key extension selects the format just like a file path would.
func Fetch(ctx context.Context, s store.Store, key string, opts ...CatalogOption) (*Catalog, error) {
	format, err := FormatFromPath(key)
	if err != nil {
		return nil, err
	}

	doc, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schema document %s from %s: %w", key, s.Name(), err)
	}

	c, err := Parse(doc.Content, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema document %s: %w", key, err)
	}

	c.logger.Info("loaded %d commands from %s document '%s' (revision %s)", c.Len(), s.Name(), doc.Key, doc.Revision)
	return c, nil
}

// Parse decodes content in the given format and compiles every command.
// All definition problems are reported together.
func Parse(content []byte, format Format, opts ...CatalogOption) (*Catalog, error) {
	options := newDefaultCatalogOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	file, err := decode(content, format)
	if err != nil {
		return nil, err
	}

	var errs data.Errors
	commands := make([]*cmd.Command, 0, len(file.Commands))
	for _, def := range file.Commands {
		command, err := compileCommand(def, options.Numbers)
		if err != nil {
			errs.Add(fmt.Errorf("command '%s': %w", def.Name, err))
			continue
		}

		options.Logger.Debug("compiled command '%s' with %d arguments", command.Name(), command.Len())
		commands = append(commands, command)
	}

	if err := errs.Errors(); err != nil {
		return nil, err
	}

	return newCatalog(options.Logger, commands)
}

// New indexes already built commands. Each one is validated.
func New(commands ...*cmd.Command) (*Catalog, error) {
	var errs data.Errors
	for _, command := range commands {
		if command == nil {
			errs.Add(fmt.Errorf("command cannot be nil"))
			continue
		}
		if err := command.Validate(); err != nil {
			errs.Add(fmt.Errorf("command '%s': %w", command.Name(), err))
		}
	}

	if err := errs.Errors(); err != nil {
		return nil, err
	}

	return newCatalog(nil, commands)
}

func newCatalog(logger *log.Logger, commands []*cmd.Command) (*Catalog, error) {
	c := &Catalog{
		commands: btree.NewMap[string, *cmd.Command](0),
		logger:   logger,
	}

	var errs data.Errors
	for _, command := range commands {
		key := strings.ToLower(command.Name())
		if _, exists := c.commands.Get(key); exists {
			errs.Add(fmt.Errorf("command '%s' declared more than once", command.Name()))
			continue
		}
		c.commands.Set(key, command)
	}

	if err := errs.Errors(); err != nil {
		return nil, err
	}
	return c, nil
}

func decode(content []byte, format Format) (*File, error) {
	var file File

	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&file); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to parse yaml schema: %w", err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(content), &file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse toml schema: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse toml schema: unknown key '%s'", undecoded[0])
		}
	default:
		return nil, fmt.Errorf("unsupported schema format '%s'", format)
	}

	return &file, nil
}

// Get looks up a command case-insensitively.
func (c *Catalog) Get(name string) (*cmd.Command, bool) {
	return c.commands.Get(strings.ToLower(name))
}

// List returns all commands sorted by lower-cased name.
func (c *Catalog) List() []*cmd.Command {
	commands := make([]*cmd.Command, 0, c.commands.Len())
	c.commands.Scan(func(_ string, command *cmd.Command) bool {
		commands = append(commands, command)
		return true
	})
	return commands
}

func (c *Catalog) Len() int {
	return c.commands.Len()
}

// Parser returns a parser for the command addressed by the first token.
func (c *Catalog) Parser(tokens []string, opts ...cmd.ParserOption) (*cmd.Parser, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no command given")
	}

	command, ok := c.Get(tokens[0])
	if !ok {
		return nil, fmt.Errorf("unknown command '%s'", tokens[0])
	}

	if c.logger != nil {
		opts = append([]cmd.ParserOption{cmd.WithLogger(c.logger)}, opts...)
	}
	return cmd.NewParser(command, opts...)
}
