package core

import (
	"sort"
	"strconv"
	"strings"

	"github.com/kilupskalvis/abook/internal/models"
)

// Argument prefixes
const (
	PrefixName    = "n/"
	PrefixPhone   = "p/"
	PrefixEmail   = "e/"
	PrefixAddress = "a/"
	PrefixTag     = "t/"
)

type usage struct {
	word string
	text string
}

var usages = []usage{
	{"add", "add n/NAME p/PHONE e/EMAIL a/ADDRESS [t/TAG]..."},
	{"edit", "edit INDEX [n/NAME] [p/PHONE] [e/EMAIL] [a/ADDRESS] [t/TAG]..."},
	{"delete", "delete INDEX"},
	{"select", "select INDEX"},
	{"pinselect", "pinselect INDEX (index in the pinned list)"},
	{"find", "find KEYWORD [MORE_KEYWORDS]..."},
	{"findtag", "findtag TAG [MORE_TAGS]..."},
	{"list", "list"},
	{"archivelist", "archivelist"},
	{"pinlist", "pinlist"},
	{"archive", "archive INDEX"},
	{"unarchive", "unarchive INDEX (index in the archived list)"},
	{"pin", "pin INDEX"},
	{"unpin", "unpin INDEX (index in the pinned list)"},
	{"clear", "clear"},
	{"undo", "undo"},
	{"redo", "redo"},
	{"history", "history"},
	{"help", "help"},
	{"exit", "exit"},
}

func usageOf(word string) string {
	for _, u := range usages {
		if u.word == word {
			return "Usage: " + u.text
		}
	}
	return ""
}

// HelpText lists the usage of every command
func HelpText() string {
	var b strings.Builder
	b.WriteString("Commands:")
	for _, u := range usages {
		b.WriteString("\n  ")
		b.WriteString(u.text)
	}
	return b.String()
}

func invalidFormat(word string) error {
	return &ParseError{Msg: "Invalid command format!", Usage: usageOf(word)}
}

// ParseCommand turns one line of user input into a Command
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	word, args, _ := strings.Cut(line, " ")
	word = strings.ToLower(word)
	args = strings.TrimSpace(args)

	switch word {
	case "add":
		return parseAdd(args)
	case "edit":
		return parseEdit(args)
	case "delete", "select", "pinselect", "archive", "unarchive", "pin", "unpin":
		i, err := parseIndex(word, args)
		if err != nil {
			return nil, err
		}
		switch word {
		case "delete":
			return DeleteCommand{Index: i}, nil
		case "select":
			return SelectCommand{Index: i}, nil
		case "pinselect":
			return PinSelectCommand{Index: i}, nil
		default:
			return MoveCommand{Op: word, Index: i}, nil
		}
	case "find":
		if args == "" {
			return nil, invalidFormat(word)
		}
		return FindCommand{Keywords: strings.Fields(args)}, nil
	case "findtag":
		if args == "" {
			return nil, invalidFormat(word)
		}
		return FindTagCommand{Tags: strings.Fields(args)}, nil
	case "list":
		return ListCommand{Kind: models.KindActive}, nil
	case "archivelist":
		return ListCommand{Kind: models.KindArchive}, nil
	case "pinlist":
		return ListCommand{Kind: models.KindPin}, nil
	case "clear":
		return ClearCommand{}, nil
	case "undo":
		return UndoCommand{}, nil
	case "redo":
		return RedoCommand{}, nil
	case "history":
		return HistoryCommand{}, nil
	case "help":
		return HelpCommand{}, nil
	case "exit":
		return ExitCommand{}, nil
	default:
		return nil, &ParseError{Msg: "Unknown command", Usage: HelpText()}
	}
}

func parseIndex(word, args string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || i < 1 {
		return 0, invalidFormat(word)
	}
	return i, nil
}

func parseAdd(args string) (Command, error) {
	preamble, values := tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixTag)
	if preamble != "" {
		return nil, invalidFormat("add")
	}
	for _, p := range []string{PrefixName, PrefixPhone, PrefixEmail, PrefixAddress} {
		if _, ok := values[p]; !ok {
			return nil, invalidFormat("add")
		}
	}
	c, err := models.NewContact(
		values.last(PrefixName),
		values.last(PrefixPhone),
		values.last(PrefixEmail),
		values.last(PrefixAddress),
		values[PrefixTag]...,
	)
	if err != nil {
		return nil, err
	}
	return AddCommand{Contact: c}, nil
}

func parseEdit(args string) (Command, error) {
	preamble, values := tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixTag)
	index, err := parseIndex("edit", preamble)
	if err != nil {
		return nil, err
	}

	patch := models.ContactPatch{
		Name:    values.last(PrefixName),
		Phone:   values.last(PrefixPhone),
		Email:   values.last(PrefixEmail),
		Address: values.last(PrefixAddress),
	}
	if tags, ok := values[PrefixTag]; ok {
		// a lone empty "t/" clears every tag
		patch.Tags = []string{}
		for _, t := range tags {
			if t != "" {
				patch.Tags = append(patch.Tags, t)
			}
		}
	}
	if patch.IsEmpty() {
		return nil, &ParseError{Msg: "At least one field to edit must be provided.", Usage: usageOf("edit")}
	}
	return EditCommand{Index: index, Patch: patch}, nil
}

type argValues map[string][]string

func (a argValues) last(prefix string) string {
	v := a[prefix]
	if len(v) == 0 {
		return ""
	}
	return v[len(v)-1]
}

// tokenize splits args at every prefix that follows whitespace. It returns
// the text before the first prefix and the trimmed values of each prefix in
// order of appearance.
func tokenize(args string, prefixes ...string) (string, argValues) {
	type mark struct {
		at     int
		prefix string
	}

	s := " " + args
	var marks []mark
	for _, p := range prefixes {
		for from := 0; ; {
			j := strings.Index(s[from:], " "+p)
			if j < 0 {
				break
			}
			marks = append(marks, mark{at: from + j + 1, prefix: p})
			from += j + 1
		}
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].at < marks[j].at })

	values := argValues{}
	if len(marks) == 0 {
		return strings.TrimSpace(s), values
	}
	for i, m := range marks {
		end := len(s)
		if i+1 < len(marks) {
			end = marks[i+1].at
		}
		values[m.prefix] = append(values[m.prefix], strings.TrimSpace(s[m.at+len(m.prefix):end]))
	}
	return strings.TrimSpace(s[:marks[0].at]), values
}
