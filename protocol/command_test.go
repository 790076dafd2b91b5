package protocol

import (
	"errors"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantCmd string
		wantErr error
	}{
		{"init", `{"cmd":"init","model_path":"/m","device":"cuda"}`, CmdInit, nil},
		{"list", `{"cmd":"list_emojis"}`, CmdListEmojis, nil},
		{"generate", `{"cmd":"generate","emoji":"😀","prompt":"p","output_path":"/o.png"}`, CmdGenerate, nil},
		{"generate_all", `{"cmd":"generate_all","prompt":"p","output_dir":"/d"}`, CmdGenerateAll, nil},
		{"cancel", `{"cmd":"cancel"}`, CmdCancel, nil},
		{"quit", `{"cmd":"quit"}`, CmdQuit, nil},
		{"invalid json", `{cmd:init}`, "", ErrMalformedCommand},
		{"truncated", `{"cmd":"gen`, "", ErrMalformedCommand},
		{"unknown cmd", `{"cmd":"restart"}`, "", ErrUnknownCommand},
		{"missing cmd", `{"emoji":"😀"}`, "", ErrUnknownCommand},
		{"empty object", `{}`, "", ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand([]byte(tt.line))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseCommand() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCommand() unexpected error: %v", err)
			}
			if cmd.Cmd != tt.wantCmd {
				t.Errorf("cmd = %q, want %q", cmd.Cmd, tt.wantCmd)
			}
		})
	}
}

func TestParseCommand_IgnoresUnknownFields(t *testing.T) {
	cmd, err := ParseCommand([]byte(`{"cmd":"cancel","unexpected":true,"extra":"xyz"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Cmd != CmdCancel {
		t.Errorf("cmd = %q, want cancel", cmd.Cmd)
	}
}

func TestValidateGenerate(t *testing.T) {
	valid := Command{Cmd: CmdGenerate, Emoji: "😀", Prompt: "a shiny emoji", OutputPath: "/tmp/out.png"}
	if err := ValidateGenerate(valid); err != nil {
		t.Errorf("valid command rejected: %v", err)
	}

	tests := []struct {
		name string
		mod  func(Command) Command
	}{
		{"missing emoji", func(c Command) Command { c.Emoji = ""; return c }},
		{"whitespace emoji", func(c Command) Command { c.Emoji = "  "; return c }},
		{"missing prompt", func(c Command) Command { c.Prompt = ""; return c }},
		{"missing output_path", func(c Command) Command { c.OutputPath = ""; return c }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGenerate(tt.mod(valid))
			if !errors.Is(err, ErrMissingField) {
				t.Errorf("expected ErrMissingField, got %v", err)
			}
		})
	}
}

func TestValidateGenerateAll(t *testing.T) {
	valid := Command{Cmd: CmdGenerateAll, Prompt: "p", OutputDir: "/tmp/batch"}
	if err := ValidateGenerateAll(valid); err != nil {
		t.Errorf("valid command rejected: %v", err)
	}

	if err := ValidateGenerateAll(Command{Cmd: CmdGenerateAll, OutputDir: "/d"}); !errors.Is(err, ErrMissingField) {
		t.Errorf("missing prompt not rejected: %v", err)
	}
	if err := ValidateGenerateAll(Command{Cmd: CmdGenerateAll, Prompt: "p"}); !errors.Is(err, ErrMissingField) {
		t.Errorf("missing output_dir not rejected: %v", err)
	}
}
