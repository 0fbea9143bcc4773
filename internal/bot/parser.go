package bot

import (
	"errors"
	"strconv"
	"strings"
)

// errInvalidArgs indicates command arguments that do not parse. Handlers
// respond with the command's usage text.
var errInvalidArgs = errors.New("invalid arguments")

// MoveArgs are the parsed 1-based positions of a /move command.
type MoveArgs struct {
	From int
	To   int
}

// extractCommandArgs strips the /command prefix (and optional @botname suffix)
// from a message and returns the remaining trimmed arguments.
func extractCommandArgs(text, command string) string {
	args := strings.TrimSpace(strings.TrimPrefix(text, command))
	if strings.HasPrefix(args, "@") {
		if spaceIdx := strings.Index(args, " "); spaceIdx != -1 {
			args = strings.TrimSpace(args[spaceIdx:])
		} else {
			args = ""
		}
	}
	return args
}

// parseIndexArg parses a single positive 1-based photo position.
func parseIndexArg(args string) (int, error) {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		return 0, errInvalidArgs
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return 0, errInvalidArgs
	}
	return n, nil
}

// parseMoveArgs parses the "<from> <to>" positions of a /move command.
func parseMoveArgs(args string) (MoveArgs, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return MoveArgs{}, errInvalidArgs
	}

	from, err := strconv.Atoi(fields[0])
	if err != nil || from < 1 {
		return MoveArgs{}, errInvalidArgs
	}
	to, err := strconv.Atoi(fields[1])
	if err != nil || to < 1 {
		return MoveArgs{}, errInvalidArgs
	}

	return MoveArgs{From: from, To: to}, nil
}

// parseCompressArg parses the quality value of a /compress command. Range
// validation happens in the settings model; this only requires an integer.
func parseCompressArg(args string) (int, error) {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		return 0, errInvalidArgs
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, errInvalidArgs
	}
	return n, nil
}
