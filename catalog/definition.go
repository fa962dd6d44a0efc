package catalog

// File is the document layout shared by YAML and TOML schema files.
type File struct {
	Commands []CommandDefinition `yaml:"commands" toml:"commands"`
}

type CommandDefinition struct {
	Name        string          `yaml:"name" toml:"name"`
	Description string          `yaml:"description,omitempty" toml:"description"`
	Args        []ArgDefinition `yaml:"args,omitempty" toml:"args"`
}

// ArgDefinition declares one argument. Kind is "positional" (default) or "named",
// Type is a scalar type name and Sequence switches the argument to a counted list.
// Default is decoded loosely and converted to the declared type on compile.
type ArgDefinition struct {
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description,omitempty" toml:"description"`
	Kind        string `yaml:"kind,omitempty" toml:"kind"`
	Type        string `yaml:"type" toml:"type"`
	Sequence    bool   `yaml:"sequence,omitempty" toml:"sequence"`
	Default     any    `yaml:"default,omitempty" toml:"default"`
}
