package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/tasklist/internal/model"
)

type Type string

const (
	TypeAdd       Type = "add"
	TypeDone      Type = "done"
	TypeUndo      Type = "undo"
	TypeEdit      Type = "edit"
	TypeRemove    Type = "rm"
	TypeFilter    Type = "filter"
	TypeClear     Type = "clear"
	TypeToggleAll Type = "toggle-all"
)

var aliases = map[string]Type{
	"remove":    TypeRemove,
	"delete":    TypeRemove,
	"show":      TypeFilter,
	"toggleall": TypeToggleAll,
	"all":       TypeToggleAll,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

// TargetArgs names a row by its 1-based position in the visible list.
type TargetArgs struct {
	Row int
}

type EditArgs struct {
	Row  int
	Text string
}

type FilterArgs struct {
	Filter model.Filter
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
	Edit   *EditArgs
	Filter *FilterArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, raw, head)
	case TypeDone, TypeUndo, TypeRemove:
		return parseTarget(input, typ, args)
	case TypeEdit:
		return parseEdit(input, raw, head, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeClear, TypeToggleAll:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", typ)}
		}
		return Command{Type: typ, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd keeps the text exactly as typed after the command word, inner
// spacing included.
func parseAdd(input, raw, head string) (Command, error) {
	text := strings.TrimSpace(raw[len(head):])
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires text"}
	}
	return Command{Type: TypeAdd, Raw: input, Add: &AddArgs{Text: text}}, nil
}

func parseTarget(input string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a row number", typ)}
	}
	row, err := parseRow(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: input, Target: &TargetArgs{Row: row}}, nil
}

func parseEdit(input, raw, head string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires a row number and text"}
	}
	row, err := parseRow(args[0])
	if err != nil {
		return Command{}, err
	}
	rest := strings.TrimSpace(raw[len(head):])
	text := strings.TrimSpace(rest[len(args[0]):])
	return Command{Type: TypeEdit, Raw: input, Edit: &EditArgs{Row: row, Text: text}}, nil
}

func parseFilter(input string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of all, active, completed"}
	}
	f, err := model.ParseFilter(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeFilter, Raw: input, Filter: &FilterArgs{Filter: f}}, nil
}

func parseRow(raw string) (int, error) {
	row, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
	if err != nil || row < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid row number: %s", raw)}
	}
	return row, nil
}
