package workflow

import (
	"fmt"
	"strconv"
	"strings"
)

// Wire form: "tag:field:field...".
// A null field is empty, ints are decimal, bools are "1" or "0",
// strings are "=" followed by the text with '\' and ':' escaped by '\'.
const (
	fieldSeparator = ':'
	escapeChar     = '\\'
	stringMarker   = '='
)

// fieldCount is the number of fields after the tag for each variant.
var fieldCount = map[Kind]int{
	KindMatchChoice:  2,
	KindSaveWord:     3,
	KindSavedInfo:    4,
	KindFlashCards:   4,
	KindTutorialPage: 1,
	KindClear:        1,
}

// Encode serializes a token into callback data.
func Encode(t Token) (string, error) {
	var fields []string

	switch v := t.(type) {
	case MatchChoice:
		fields = []string{encodeInt(v.Choice), encodeString(v.SearchedWord)}
	case SaveWord:
		fields = []string{encodeInt(v.WordToSave), encodeString(v.SearchedWord), encodeBool(v.ShouldContinue)}
	case SavedInfo:
		fields = []string{encodeInt(v.SavedID), encodeInt(v.WordToSee), encodeBool(v.Back), encodeBool(v.StartNotebook)}
	case FlashCards:
		fields = []string{
			encodeBool(&v.Training),
			strconv.Itoa(v.Current),
			encodeString(v.PreviousQuestion),
			encodeString(v.PreviousAnswer),
		}
	case TutorialPage:
		fields = []string{strconv.Itoa(v.Page)}
	case Clear:
		fields = []string{encodeBool(&v.Clear)}
	default:
		return "", fmt.Errorf("encode: unsupported token %T", t)
	}

	var sb strings.Builder
	sb.WriteString(string(t.Kind()))
	for _, f := range fields {
		sb.WriteByte(fieldSeparator)
		sb.WriteString(f)
	}

	data := sb.String()
	if len(data) > MaxPayloadSize {
		return "", fmt.Errorf("%w: %s token is %d bytes", ErrPayloadTooLarge, t.Kind(), len(data))
	}
	return data, nil
}

// Decode parses callback data produced by Encode.
func Decode(data string) (Token, error) {
	parts, err := splitFields(data)
	if err != nil {
		return nil, err
	}

	kind := Kind(parts[0])
	want, ok := fieldCount[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown tag %q", ErrMalformedToken, parts[0])
	}
	fields := parts[1:]
	if len(fields) != want {
		return nil, fmt.Errorf("%w: %s expects %d fields, got %d", ErrMalformedToken, kind, want, len(fields))
	}

	d := &fieldDecoder{kind: kind}
	var t Token

	switch kind {
	case KindMatchChoice:
		t = MatchChoice{
			Choice:       d.optInt(fields[0]),
			SearchedWord: d.optString(fields[1]),
		}
	case KindSaveWord:
		t = SaveWord{
			WordToSave:     d.optInt(fields[0]),
			SearchedWord:   d.optString(fields[1]),
			ShouldContinue: d.optBool(fields[2]),
		}
	case KindSavedInfo:
		t = SavedInfo{
			SavedID:       d.optInt(fields[0]),
			WordToSee:     d.optInt(fields[1]),
			Back:          d.optBool(fields[2]),
			StartNotebook: d.optBool(fields[3]),
		}
	case KindFlashCards:
		t = FlashCards{
			Training:         d.requiredBool(fields[0]),
			Current:          d.requiredInt(fields[1]),
			PreviousQuestion: d.optString(fields[2]),
			PreviousAnswer:   d.optString(fields[3]),
		}
	case KindTutorialPage:
		t = TutorialPage{Page: d.requiredInt(fields[0])}
	case KindClear:
		t = Clear{Clear: d.requiredBool(fields[0])}
	}

	if d.err != nil {
		return nil, d.err
	}
	return t, nil
}

func encodeInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func encodeBool(v *bool) string {
	if v == nil {
		return ""
	}
	if *v {
		return "1"
	}
	return "0"
}

func encodeString(v *string) string {
	if v == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte(stringMarker)
	for i := 0; i < len(*v); i++ {
		c := (*v)[i]
		if c == escapeChar || c == fieldSeparator {
			sb.WriteByte(escapeChar)
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// splitFields splits on unescaped separators and removes the escapes.
func splitFields(data string) ([]string, error) {
	if data == "" {
		return nil, fmt.Errorf("%w: empty data", ErrMalformedToken)
	}

	var parts []string
	var cur strings.Builder
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch c {
		case escapeChar:
			if i+1 >= len(data) {
				return nil, fmt.Errorf("%w: dangling escape", ErrMalformedToken)
			}
			i++
			cur.WriteByte(data[i])
		case fieldSeparator:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	parts = append(parts, cur.String())
	return parts, nil
}

// fieldDecoder keeps the first error so Decode reads as a flat list of fields.
type fieldDecoder struct {
	kind Kind
	err  error
}

func (d *fieldDecoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: %s: %s", ErrMalformedToken, d.kind, fmt.Sprintf(format, args...))
	}
}

func (d *fieldDecoder) optInt(raw string) *int64 {
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		d.fail("bad int %q", raw)
		return nil
	}
	return &n
}

func (d *fieldDecoder) requiredInt(raw string) int {
	if raw == "" {
		d.fail("missing required int")
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		d.fail("bad int %q", raw)
		return 0
	}
	return n
}

func (d *fieldDecoder) optBool(raw string) *bool {
	switch raw {
	case "":
		return nil
	case "1":
		return Ptr(true)
	case "0":
		return Ptr(false)
	}
	d.fail("bad bool %q", raw)
	return nil
}

func (d *fieldDecoder) requiredBool(raw string) bool {
	if raw == "" {
		d.fail("missing required bool")
		return false
	}
	v := d.optBool(raw)
	return v != nil && *v
}

func (d *fieldDecoder) optString(raw string) *string {
	if raw == "" {
		return nil
	}
	if raw[0] != stringMarker {
		d.fail("bad string %q", raw)
		return nil
	}
	return Ptr(raw[1:])
}
