// Package protocol implements the newline-delimited JSON contract between
// the backend and its driving process: inbound command parsing, settings
// normalization, outbound event types and the line-flushed emitter.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Command type discriminators accepted on stdin.
const (
	CmdInit        = "init"
	CmdListEmojis  = "list_emojis"
	CmdGenerate    = "generate"
	CmdGenerateAll = "generate_all"
	CmdCancel      = "cancel"
	CmdQuit        = "quit"
)

// Protocol errors
var (
	ErrMalformedCommand = errors.New("protocol: malformed command line")
	ErrUnknownCommand   = errors.New("protocol: unknown command type")
	ErrMissingField     = errors.New("protocol: missing required field")
)

// Command is the envelope for every inbound message. Fields that do not
// apply to a given command type are left at their zero values; fields
// beyond these are ignored by the decoder.
type Command struct {
	Cmd string `json:"cmd"`

	// init
	ModelPath        string `json:"model_path,omitempty"`
	Device           string `json:"device,omitempty"`
	FontPath         string `json:"font_path,omitempty"`
	EnableCPUOffload bool   `json:"enable_cpu_offload,omitempty"`

	// generate / generate_all
	JobID      string         `json:"job_id,omitempty"`
	Emoji      string         `json:"emoji,omitempty"`
	Prompt     string         `json:"prompt,omitempty"`
	OutputPath string         `json:"output_path,omitempty"`
	OutputDir  string         `json:"output_dir,omitempty"`
	Settings   map[string]any `json:"settings,omitempty"`

	// PreserveProgress keeps the shared progress counters untouched when a
	// generate call runs as one item of a batch.
	PreserveProgress bool `json:"preserve_progress_state,omitempty"`
}

// ParseCommand decodes one input line into a Command.
// Returns ErrMalformedCommand for invalid JSON and ErrUnknownCommand for
// an unrecognized or absent cmd discriminator; the dispatcher drops both
// silently per the protocol contract.
func ParseCommand(line []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(line, &cmd); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrMalformedCommand, err)
	}

	switch cmd.Cmd {
	case CmdInit, CmdListEmojis, CmdGenerate, CmdGenerateAll, CmdCancel, CmdQuit:
		return cmd, nil
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Cmd)
	}
}

// ValidateGenerate checks the required fields of a generate command.
// The job_id is optional (one is minted when absent).
func ValidateGenerate(cmd Command) error {
	if strings.TrimSpace(cmd.Emoji) == "" {
		return fmt.Errorf("%w: emoji", ErrMissingField)
	}
	if strings.TrimSpace(cmd.Prompt) == "" {
		return fmt.Errorf("%w: prompt", ErrMissingField)
	}
	if strings.TrimSpace(cmd.OutputPath) == "" {
		return fmt.Errorf("%w: output_path", ErrMissingField)
	}
	return nil
}

// ValidateGenerateAll checks the required fields of a generate_all command.
func ValidateGenerateAll(cmd Command) error {
	if strings.TrimSpace(cmd.Prompt) == "" {
		return fmt.Errorf("%w: prompt", ErrMissingField)
	}
	if strings.TrimSpace(cmd.OutputDir) == "" {
		return fmt.Errorf("%w: output_dir", ErrMissingField)
	}
	return nil
}
