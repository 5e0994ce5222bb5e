// Package output renders command results in the formats the CLI
// supports: human-readable text, JSON, NDJSON, YAML, and adaptive
// terminal tables. The active format and output-shaping flags travel
// through the context so commands hand a Printer their typed results
// and nothing else.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	clierrors "github.com/sageleaf-labs/canvas-cli/internal/errors"
)

// Format represents an output format.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTable  Format = "table"
)

// ParseFormat converts a user-supplied format name to a Format.
// The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "ndjson", "jsonl":
		return FormatNDJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "table":
		return FormatTable, nil
	default:
		return "", clierrors.NewUserError(
			fmt.Sprintf("unknown output format %q", s),
			"Valid formats: text, json, ndjson, yaml, table",
		)
	}
}

// Printer writes command results to a single sink in the configured
// format.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes data in the format carried by ctx. JSONPath extraction
// and --limit are applied first, then the format-specific renderer.
func (p *Printer) Print(ctx context.Context, data interface{}) error {
	format := FormatFromContext(ctx)

	transformed, err := applyOutputTransforms(ctx, data, format)
	if err != nil {
		return err
	}
	data = transformed

	data = applyLimit(data, LimitFromContext(ctx))

	switch format {
	case FormatJSON:
		return p.printJSON(ctx, data)
	case FormatNDJSON:
		return p.printNDJSON(ctx, data)
	case FormatYAML:
		return p.printYAML(ctx, data)
	case FormatTable:
		return p.printTable(ctx, data)
	default:
		return p.printText(ctx, data)
	}
}

// printYAML outputs data as YAML. Data is normalized through its JSON
// encoding first so field names match the JSON output.
func (p *Printer) printYAML(ctx context.Context, data interface{}) error {
	if query := QueryFromContext(ctx); query != "" {
		results, err := runQueryRaw(query, data)
		if err != nil {
			return err
		}
		if len(results) == 1 {
			data = results[0]
		} else {
			data = interface{}(results)
		}
	}

	normalized, err := normalizeToInterface(data)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(normalized)
}

// printText outputs data in a human-readable form. Tabular results
// render as an adaptive table when the sink is a terminal; otherwise
// they fall back to plain line output that pipes cleanly.
func (p *Printer) printText(ctx context.Context, data interface{}) error {
	if QuietFromContext(ctx) {
		return p.printQuiet(data)
	}

	if query := QueryFromContext(ctx); query != "" {
		results, err := runQueryRaw(query, data)
		if err != nil {
			return err
		}
		return p.printQueryResultsText(results)
	}

	if tab, ok := data.(Tabular); ok && p.isTerminal() {
		return p.renderTable(ctx, tab)
	}

	return p.printTextValue(data)
}

// printQuiet prints only identifiers, one per line. Slices print each
// element's ID; single values print their own.
func (p *Printer) printQuiet(data interface{}) error {
	v := derefValue(reflect.ValueOf(data))
	if !v.IsValid() {
		return nil
	}
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		for i := 0; i < v.Len(); i++ {
			if _, err := fmt.Fprintln(p.w, identifierOf(v.Index(i))); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := fmt.Fprintln(p.w, identifierOf(v))
	return err
}

func (p *Printer) printTextValue(data interface{}) error {
	v := derefValue(reflect.ValueOf(data))
	if !v.IsValid() {
		_, err := fmt.Fprintln(p.w, "null")
		return err
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return p.printTextSlice(v)
	case reflect.Map:
		return p.printTextMap(v)
	case reflect.Struct:
		if t, ok := v.Interface().(time.Time); ok {
			_, err := fmt.Fprintln(p.w, formatTime(t))
			return err
		}
		return p.printTextStruct(v)
	default:
		_, err := fmt.Fprintln(p.w, formatScalar(v))
		return err
	}
}

// printTextStruct prints one "name: value" line per populated field,
// aligned with a tabwriter. Zero-valued fields are omitted so sparse
// API objects stay readable.
func (p *Printer) printTextStruct(v reflect.Value) error {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldJSONName(f)
		if name == "" {
			continue
		}
		fv := derefValue(v.Field(i))
		if !fv.IsValid() || fv.IsZero() {
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\n", name, formatValue(fv))
	}
	return tw.Flush()
}

func (p *Printer) printTextMap(v reflect.Value) error {
	if v.Type().Key().Kind() != reflect.String {
		_, err := fmt.Fprintln(p.w, formatValue(v))
		return err
	}
	keys := make([]string, 0, v.Len())
	for _, k := range v.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	for _, k := range keys {
		fv := derefValue(v.MapIndex(reflect.ValueOf(k)))
		if !fv.IsValid() {
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\n", k, formatValue(fv))
	}
	return tw.Flush()
}

// printTextSlice prints one compact line per element. Struct elements
// show their identifying fields; scalars print as-is.
func (p *Printer) printTextSlice(v reflect.Value) error {
	if v.Len() == 0 {
		_, err := fmt.Fprintln(p.w, "No results")
		return err
	}
	for i := 0; i < v.Len(); i++ {
		elem := derefValue(v.Index(i))
		if !elem.IsValid() {
			continue
		}
		line := formatCompact(elem)
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
	}
	return nil
}

// isTerminal reports whether the Printer's sink is an interactive
// terminal. Buffers and pipes are not, which keeps text output stable
// in scripts and tests.
func (p *Printer) isTerminal() bool {
	f, ok := p.w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// compactNameFields are checked in order when summarizing a struct to
// a single line.
var compactNameFields = []string{"Name", "Title", "DisplayName", "Filename"}

// formatCompact summarizes a struct (or any value) as one line:
// "ID  Name" for API objects, scalar formatting otherwise.
func formatCompact(v reflect.Value) string {
	if v.Kind() != reflect.Struct {
		return formatValue(v)
	}
	if t, ok := v.Interface().(time.Time); ok {
		return formatTime(t)
	}

	var parts []string
	if id := v.FieldByName("ID"); id.IsValid() && !id.IsZero() {
		parts = append(parts, formatScalar(id))
	}
	for _, name := range compactNameFields {
		if f := derefValue(v.FieldByName(name)); f.IsValid() && f.Kind() == reflect.String && f.String() != "" {
			parts = append(parts, f.String())
			break
		}
	}
	if len(parts) == 0 {
		return formatValue(v)
	}
	return strings.Join(parts, "  ")
}

// formatValue renders any value for text output: scalars directly,
// times as timestamps, everything else via fmt.
func formatValue(v reflect.Value) string {
	v = derefValue(v)
	if !v.IsValid() {
		return ""
	}
	if t, ok := v.Interface().(time.Time); ok {
		return formatTime(t)
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if isScalarSlice(v) {
			items := make([]string, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				items = append(items, formatScalar(derefValue(v.Index(i))))
			}
			return strings.Join(items, ", ")
		}
		return fmt.Sprintf("%v", v.Interface())
	case reflect.Struct, reflect.Map:
		return fmt.Sprintf("%v", v.Interface())
	default:
		return formatScalar(v)
	}
}

func formatScalar(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// identifierOf returns the best single-token identifier for a value:
// the ID field for structs, the "id" entry for maps, the value itself
// otherwise.
func identifierOf(v reflect.Value) string {
	v = derefValue(v)
	if !v.IsValid() {
		return ""
	}
	switch v.Kind() {
	case reflect.Struct:
		if id := v.FieldByName("ID"); id.IsValid() && !id.IsZero() {
			return formatScalar(id)
		}
	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String {
			if id := derefValue(v.MapIndex(reflect.ValueOf("id"))); id.IsValid() {
				return formatScalar(id)
			}
		}
	}
	return formatValue(v)
}

// derefValue unwraps pointers and interfaces; nil yields the invalid
// Value.
func derefValue(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// fieldJSONName returns the wire name for a struct field, or "" when
// the field is excluded from output.
func fieldJSONName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name := strings.Split(tag, ",")[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func isScalarSlice(v reflect.Value) bool {
	for i := 0; i < v.Len(); i++ {
		e := derefValue(v.Index(i))
		if !e.IsValid() {
			continue
		}
		switch e.Kind() {
		case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
			return false
		}
	}
	return true
}
