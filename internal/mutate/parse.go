package mutate

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"shoplist/internal/model"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// Verbs lists the command words Parse understands, in help order.
var Verbs = []string{"add", "delete", "toggle", "edit", "filter", "hide", "show", "hide-toggle", "match", "clear"}

// Parse builds an action from a verb and its positional arguments, e.g.
// ("edit", ["1", "pears"]). Multi-word names may be passed as several args.
func Parse(verb string, args []string) (Action, error) {
	verb = strings.ToLower(strings.TrimSpace(verb))
	switch verb {
	case "add", "new":
		name := strings.TrimSpace(strings.Join(args, " "))
		if name == "" {
			return nil, ArgError{Kind: KindAdd, Reason: "missing name"}
		}
		return Add{Name: name}, nil

	case "delete", "del", "rm":
		idx, err := parseIndex(KindDelete, args)
		if err != nil {
			return nil, err
		}
		return Delete{Index: idx}, nil

	case "toggle", "check":
		idx, err := parseIndex(KindToggle, args)
		if err != nil {
			return nil, err
		}
		return Toggle{Index: idx}, nil

	case "edit", "rename":
		if len(args) < 2 {
			return nil, ArgError{Kind: KindEdit, Reason: "usage: edit <index> <name>"}
		}
		idx, err := parseIndex(KindEdit, args[:1])
		if err != nil {
			return nil, err
		}
		return Edit{Index: idx, Name: strings.Join(args[1:], " ")}, nil

	case "filter", "find":
		return Filter{Query: strings.Join(args, " ")}, nil

	case "hide", "hide-checked":
		return SetHideChecked{Hide: true}, nil

	case "show", "show-checked":
		return SetHideChecked{Hide: false}, nil

	case "hide-toggle", "toggle-hidden":
		return ToggleHideChecked{}, nil

	case "match":
		if len(args) != 1 {
			return nil, ArgError{Kind: KindSetMatch, Reason: "usage: match substring|fuzzy"}
		}
		mode, ok := model.ParseMatchMode(args[0])
		if !ok {
			return nil, ArgError{Kind: KindSetMatch, Reason: "unknown match mode " + args[0]}
		}
		return SetMatch{Mode: mode}, nil

	case "clear", "clear-checked":
		return ClearChecked{}, nil

	case "":
		return nil, ArgError{Kind: "parse", Reason: "empty command"}

	default:
		return nil, UnknownActionError{Kind: verb}
	}
}

// ParseLine splits a command line with shell-like quoting and parses it.
func ParseLine(line string) (Action, error) {
	words, err := splitWords(line)
	if err != nil {
		return nil, ArgError{Kind: "parse", Reason: err.Error()}
	}
	if len(words) == 0 {
		return nil, ArgError{Kind: "parse", Reason: "empty command"}
	}
	return Parse(words[0], words[1:])
}

func parseIndex(kind string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, ArgError{Kind: kind, Reason: "expected exactly one index"}
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, ArgError{Kind: kind, Reason: "invalid index " + strconv.Quote(args[0])}
	}
	return n, nil
}

// splitWords handles single quotes, double quotes and backslash escapes outside
// single quotes. A quoted empty string is kept as an empty word.
func splitWords(s string) ([]string, error) {
	var out []string
	var cur []rune
	inWord := false
	inSingle := false
	inDouble := false
	escaped := false

	flush := func() {
		if inWord {
			out = append(out, string(cur))
		}
		cur = cur[:0]
		inWord = false
	}

	for _, r := range s {
		switch {
		case escaped:
			cur = append(cur, r)
			escaped = false
		case r == '\\' && !inSingle:
			escaped = true
			inWord = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			inWord = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			inWord = true
		case !inSingle && !inDouble && unicode.IsSpace(r):
			flush()
		default:
			cur = append(cur, r)
			inWord = true
		}
	}
	if inSingle || inDouble {
		return nil, errUnterminatedQuote
	}
	flush()
	return out, nil
}
