package utils

import (
	"io"
	"log"
	"sort"
	"strings"
)

type ArgKind int

const (
	KindSingle ArgKind = iota
	KindMultiple
)

// ArgValue holds either a single value or the ordered values of a repeated argument
type ArgValue struct {
	kind   ArgKind
	values []string
}

func Single(value string) ArgValue {
	return ArgValue{kind: KindSingle, values: []string{value}}
}

func Multiple(values ...string) ArgValue {
	return ArgValue{kind: KindMultiple, values: append([]string(nil), values...)}
}

func (v ArgValue) Kind() ArgKind {
	return v.kind
}

// Single returns the value when the argument was given exactly once
func (v ArgValue) Single() (string, bool) {
	if v.kind != KindSingle || len(v.values) != 1 {
		return "", false
	}
	return v.values[0], true
}

// Values returns every value in the order given on the command line, for both kinds
func (v ArgValue) Values() []string {
	return append([]string(nil), v.values...)
}

func (v ArgValue) add(value string) ArgValue {
	return ArgValue{kind: KindMultiple, values: append(v.values, value)}
}

// ArgumentTable maps argument names to their values
type ArgumentTable map[string]ArgValue

func (t ArgumentTable) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Get returns the first value seen for name
func (t ArgumentTable) Get(name string) (string, bool) {
	v, ok := t[name]
	if !ok || len(v.values) == 0 {
		return "", false
	}
	return v.values[0], true
}

func (t ArgumentTable) Values(name string) []string {
	v, ok := t[name]
	if !ok {
		return nil
	}
	return v.Values()
}

// Names returns the argument names sorted
func (t ArgumentTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type RequiredArg struct {
	Name    string
	Message string // returned as the error text when Name is missing
}

type RequiredSpec []RequiredArg

type ArgParser struct {
	required RequiredSpec
	verbose  bool
	logger   *log.Logger
}

func NewArgParser(required RequiredSpec, verbose bool, l *log.Logger) *ArgParser {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	return &ArgParser{
		required: append(RequiredSpec(nil), required...),
		verbose:  verbose,
		logger:   l,
	}
}

// Parse Parse command line arguments in format "-name?value" into an ArgumentTable.
// Tokens are joined without a separator before splitting on '-', so "-a?1" "-b?2" and "-a?1-b?2" are the same input.
func (p *ArgParser) Parse(args []string) (ArgumentTable, error) {
	argumentList := strings.Join(args, "")
	fragments := strings.FieldsFunc(argumentList, func(r rune) bool { return r == '-' })

	p.print("INFO: Parsing %d argument fragment(s)", len(fragments))

	arguments := make(ArgumentTable, len(fragments))
	for _, fragment := range fragments {
		name, value, found := strings.Cut(fragment, "?")
		if !found {
			return nil, &MalformedArgumentError{Fragment: fragment}
		}

		if prev, ok := arguments[name]; ok {
			arguments[name] = prev.add(value)
		} else {
			arguments[name] = Single(value)
		}
	}

	if err := p.checkArguments(arguments); err != nil {
		return nil, err
	}
	p.print("INFO: Parsed %d argument(s)", len(arguments))
	return arguments, nil
}

func (p *ArgParser) checkArguments(arguments ArgumentTable) error {
	for _, req := range p.required {
		if !arguments.Has(req.Name) {
			return &MissingArgumentError{Name: req.Name, Message: req.Message}
		}
	}
	return nil
}

func (p *ArgParser) print(format string, v ...any) {
	if p.verbose {
		p.logger.Printf(format, v...)
	}
}

// ParseArgs is a one-shot Parse; verbose notes go to the standard logger
func ParseArgs(args []string, required RequiredSpec, verbose bool) (ArgumentTable, error) {
	return NewArgParser(required, verbose, log.Default()).Parse(args)
}
