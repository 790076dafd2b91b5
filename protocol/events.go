package protocol

import "github.com/cskillzmartin/genmoji/catalog"

// Event type discriminators written to stdout.
const (
	TypeReady     = "ready"
	TypeEmojiList = "emoji_list"
	TypeProgress  = "progress"
	TypeResult    = "result"
	TypeError     = "error"
	TypeCanceled  = "canceled"
)

// Ready reports engine initialization state after an init command.
// The python_executable and diffusers_version field names are fixed by the
// driving desktop client; this backend populates them with the executable
// path and the engine runtime version string.
type Ready struct {
	Type        string `json:"type"`
	Mode        string `json:"mode"`
	Fallback    bool   `json:"fallback"`
	Message     string `json:"message"`
	BackendFile string `json:"backend_file"`
	Executable  string `json:"python_executable"`
	Version     string `json:"diffusers_version"`
}

// EmojiList carries the full catalog snapshot.
type EmojiList struct {
	Type   string          `json:"type"`
	Emojis []catalog.Emoji `json:"emojis"`
}

// Progress announces that a batch item is about to start.
type Progress struct {
	Type    string `json:"type"`
	JobID   string `json:"job_id"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Emoji   string `json:"emoji"`
}

// Result is the terminal event for a successful job.
type Result struct {
	Type       string `json:"type"`
	JobID      string `json:"job_id"`
	Emoji      string `json:"emoji"`
	OutputPath string `json:"output_path"`
	Success    bool   `json:"success"`
	Skipped    bool   `json:"skipped"`
}

// Error is the terminal event for a failed job or a rejected command.
type Error struct {
	Type    string `json:"type"`
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

// Canceled reports a batch stopped at an item boundary. Current counts
// work already completed, never work in flight.
type Canceled struct {
	Type    string `json:"type"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// NewReady builds a ready event.
func NewReady(mode string, fallback bool, message, backendFile, executable, version string) Ready {
	return Ready{
		Type:        TypeReady,
		Mode:        mode,
		Fallback:    fallback,
		Message:     message,
		BackendFile: backendFile,
		Executable:  executable,
		Version:     version,
	}
}

// NewEmojiList builds an emoji_list event.
func NewEmojiList(emojis []catalog.Emoji) EmojiList {
	return EmojiList{Type: TypeEmojiList, Emojis: emojis}
}

// NewProgress builds a progress event.
func NewProgress(jobID string, current, total int, emoji string) Progress {
	return Progress{Type: TypeProgress, JobID: jobID, Current: current, Total: total, Emoji: emoji}
}

// NewResult builds a successful result event.
func NewResult(jobID, emoji, outputPath string) Result {
	return Result{Type: TypeResult, JobID: jobID, Emoji: emoji, OutputPath: outputPath, Success: true}
}

// NewError builds an error event. jobID may be empty for command-level
// failures that have no job scope.
func NewError(jobID, message string) Error {
	return Error{Type: TypeError, JobID: jobID, Message: message}
}

// NewCanceled builds a canceled event.
func NewCanceled(current, total int, message string) Canceled {
	return Canceled{Type: TypeCanceled, Current: current, Total: total, Message: message}
}
