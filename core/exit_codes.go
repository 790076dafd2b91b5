package core

// Exit codes for the backend process.
// Signal-based exits follow the Unix 128+signal convention.
const (
	// ExitCodeSuccess indicates a clean shutdown, including a quit command.
	ExitCodeSuccess = 0

	// ExitCodeError indicates startup or dispatch-loop failure.
	ExitCodeError = 1

	// ExitCodeSIGINT indicates termination due to SIGINT (128 + 2).
	ExitCodeSIGINT = 130

	// ExitCodeSIGTERM indicates termination due to SIGTERM (128 + 15).
	ExitCodeSIGTERM = 143
)

// ExitCodeName returns a human-readable name for an exit code, used in
// the forced-exit notice on stderr.
func ExitCodeName(code int) string {
	switch code {
	case ExitCodeSuccess:
		return "success"
	case ExitCodeError:
		return "error"
	case ExitCodeSIGINT:
		return "interrupted (SIGINT)"
	case ExitCodeSIGTERM:
		return "terminated (SIGTERM)"
	default:
		return "unknown"
	}
}
