package builtin

import (
	"testing"
)

func TestCommands_AreValid(t *testing.T) {
	for _, command := range Commands() {
		t.Run(command.Name(), func(tst *testing.T) {
			if err := command.Validate(); err != nil {
				tst.Fatalf("built-in command is invalid: %v", err)
			}
		})
	}

	c, err := Catalog()
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 commands, got %d", c.Len())
	}
}

func TestSetCommand_Parse(t *testing.T) {
	result, err := SetCommand().ParseArgs([]string{"SET", "k", "v", "tags", "2", "a", "b"})
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}

	if v, _ := result.Unsigned("ex"); v != 0 {
		t.Fatalf("ex = %d", v)
	}
	tags, err := result.TextSequence("tags")
	if err != nil || len(tags) != 2 || tags[0] != "a" || tags[1] != "b" {
		t.Fatalf("tags = %v, %v", tags, err)
	}

	result, err = SetCommand().ParseArgs([]string{"set", "k"})
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	tags, err = result.TextSequence("tags")
	if err != nil || len(tags) != 0 {
		t.Fatalf("expected empty default tags, got %v, %v", tags, err)
	}
	if v, _ := result.Text("value"); v != "" {
		t.Fatalf("value = %q", v)
	}
}
