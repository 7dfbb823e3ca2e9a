// Package entities implements the brace-delimited key/value text stream
// stored in the ENTITIES lump: a sequence of entities, each a set of plain
// key/value pairs and "output" event connections, with the output-vs-kv
// distinction resolved from the shape of the value text rather than a
// dedicated grammar token.
package entities

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vortigaunt/srcbsp/internal/bsperr"
)

// outputSep is the post-L4D2 separator used inside an output's value.
const outputSep = 0x1D

// KV is a plain key/value pair.
type KV struct {
	Key, Value string
}

// Output is an event connection: "target,input,parameter,delay,times_to_fire"
// embedded in a kv-shaped line's value. All fields are kept as their
// original text so round-tripping never reformats a number.
type Output struct {
	Name         string // the line's key, e.g. "OnTrigger"
	Target       string
	Input        string
	Parameter    string
	Delay        string
	TimesToFire  string
}

// Entity is one `{ ... }` block: an ordered list of plain key/values and an
// ordered list of outputs. The two are kept separate rather than
// interleaved, since the wire format does not require (or preserve) any
// particular interleaving between them.
type Entity struct {
	KeyValues []KV
	Outputs   []Output
}

// Classname returns the entity's "classname" value, or "" if absent.
func (e *Entity) Classname() string {
	for _, kv := range e.KeyValues {
		if kv.Key == "classname" {
			return kv.Value
		}
	}
	return ""
}

// Get returns the value of the first key/value pair with the given key.
func (e *Entity) Get(key string) (string, bool) {
	for _, kv := range e.KeyValues {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// VMF is the decoded ENTITIES lump: a distinguished worldspawn entity
// followed by every other entity in file order.
type VMF struct {
	World    Entity
	Entities []Entity
}

// Parse decodes raw ENTITIES lump bytes. The first entity's classname must
// be "worldspawn"; a trailing \x00 line terminates the stream, and any
// non-empty bytes after it are an error.
func Parse(raw []byte) (*VMF, error) {
	text := string(raw)
	lines := strings.Split(text, "\n")

	vmf := &VMF{}
	var current *Entity
	seenFirst := false
	terminated := false
	consumedLines := 0

	for _, rawLine := range lines {
		consumedLines++
		line := strings.TrimRight(rawLine, "\r")

		if line == "\x00" {
			terminated = true
			break
		}

		switch {
		case line == "{":
			if current != nil {
				return nil, bsperr.New(bsperr.EntityParseError, "nested '{' before closing previous entity")
			}
			current = &Entity{}
		case line == "}":
			if current == nil {
				return nil, bsperr.New(bsperr.EntityParseError, "'}' without matching '{'")
			}
			if !seenFirst {
				if current.Classname() != "worldspawn" {
					return nil, bsperr.New(bsperr.EntityParseError, "first entity must be worldspawn, got classname %q", current.Classname())
				}
				vmf.World = *current
				seenFirst = true
			} else {
				vmf.Entities = append(vmf.Entities, *current)
			}
			current = nil
		case strings.TrimSpace(line) == "":
			// Blank lines between entities are tolerated.
		default:
			if current == nil {
				return nil, bsperr.New(bsperr.EntityParseError, "key/value line outside any entity: %q", line)
			}
			if err := parseLine(line, current); err != nil {
				return nil, err
			}
		}
	}

	if current != nil {
		return nil, bsperr.New(bsperr.EntityParseError, "unclosed entity at end of data")
	}
	if !seenFirst {
		return nil, bsperr.New(bsperr.EntityParseError, "no worldspawn entity found")
	}

	if terminated {
		// Anything left over other than whitespace is data after the
		// final NUL.
		remainder := strings.Join(lines[consumedLines:], "\n")
		if strings.TrimSpace(remainder) != "" {
			return nil, bsperr.New(bsperr.EntityParseError, "data after final NUL terminator")
		}
	}

	return vmf, nil
}

// parseLine parses a `"key" "value"` line (with \" escapes in the value)
// and appends it to ent as either a KV or an Output, per the I/O
// disambiguation rules.
func parseLine(line string, ent *Entity) error {
	key, value, err := splitKV(line)
	if err != nil {
		return err
	}

	switch {
	case strings.IndexByte(value, outputSep) >= 0:
		out, err := parseOutput(key, value, outputSep)
		if err != nil {
			return err
		}
		ent.Outputs = append(ent.Outputs, *out)
	case strings.Count(value, ",") == 4:
		if out, err := parseOutput(key, value, ','); err == nil {
			ent.Outputs = append(ent.Outputs, *out)
		} else {
			ent.KeyValues = append(ent.KeyValues, KV{key, value})
		}
	default:
		ent.KeyValues = append(ent.KeyValues, KV{key, value})
	}
	return nil
}

func parseOutput(name, value string, sep byte) (*Output, error) {
	parts := strings.Split(value, string(sep))
	if len(parts) != 5 {
		return nil, bsperr.New(bsperr.EntityParseError, "output value %q does not split into 5 fields on %q", value, sep)
	}
	return &Output{
		Name:        name,
		Target:      parts[0],
		Input:       parts[1],
		Parameter:   parts[2],
		Delay:       parts[3],
		TimesToFire: parts[4],
	}, nil
}

// splitKV parses `"key" "value"`, honoring \" escapes inside the value.
func splitKV(line string) (key, value string, err error) {
	s := strings.TrimSpace(line)
	if len(s) == 0 || s[0] != '"' {
		return "", "", bsperr.New(bsperr.EntityParseError, "expected quoted key, got %q", line)
	}
	end := strings.IndexByte(s[1:], '"')
	if end < 0 {
		return "", "", bsperr.New(bsperr.EntityParseError, "unterminated key in %q", line)
	}
	key = s[1 : 1+end]
	rest := strings.TrimSpace(s[1+end+1:])
	if len(rest) == 0 || rest[0] != '"' {
		return "", "", bsperr.New(bsperr.EntityParseError, "expected quoted value, got %q", line)
	}
	value, ok := unescapeQuoted(rest[1:])
	if !ok {
		return "", "", bsperr.New(bsperr.EntityParseError, "unterminated value in %q", line)
	}
	return key, value, nil
}

// unescapeQuoted reads up to the first unescaped '"', unescaping \" to "
// along the way.
func unescapeQuoted(s string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && s[i+1] == '"' {
				b.WriteByte('"')
				i++
				continue
			}
			b.WriteByte(s[i])
		case '"':
			return b.String(), true
		default:
			b.WriteByte(s[i])
		}
	}
	return "", false
}

// SeparatorFor returns the output separator byte conventional for a given
// file version: versions from L4D2 (21) onward use 0x1D; earlier versions
// use ','.
func SeparatorFor(fileVersion int32) byte {
	if fileVersion >= 21 {
		return outputSep
	}
	return ','
}

// WriteOptions controls Write's choice of output separator.
type WriteOptions struct {
	// FileVersion picks the conventional separator via SeparatorFor, unless
	// ForceSeparator is set.
	FileVersion int32
	// ForceSeparator, if nonzero, overrides the version-derived separator
	// (force-comma or force-0x1D).
	ForceSeparator byte
}

// Write serializes a VMF back to ENTITIES lump bytes: worldspawn first,
// then the rest in order; each entity's key/values followed by its
// outputs; embedded quotes escaped as \"; terminated by a bare NUL byte.
func Write(v *VMF, opts WriteOptions) []byte {
	sep := opts.ForceSeparator
	if sep == 0 {
		sep = SeparatorFor(opts.FileVersion)
	}

	var buf bytes.Buffer
	writeEntity(&buf, &v.World, sep)
	for i := range v.Entities {
		writeEntity(&buf, &v.Entities[i], sep)
	}
	buf.WriteByte(0)
	return buf.Bytes()
}

func writeEntity(buf *bytes.Buffer, e *Entity, sep byte) {
	buf.WriteString("{\n")
	for _, kv := range e.KeyValues {
		fmt.Fprintf(buf, "\"%s\" \"%s\"\n", escapeQuotes(kv.Key), escapeQuotes(kv.Value))
	}
	for _, o := range e.Outputs {
		value := strings.Join([]string{o.Target, o.Input, o.Parameter, o.Delay, o.TimesToFire}, string(sep))
		fmt.Fprintf(buf, "\"%s\" \"%s\"\n", escapeQuotes(o.Name), escapeQuotes(value))
	}
	buf.WriteString("}\n")
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
