package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
	"github.com/ohler55/ojg/oj"
	"github.com/vk/fnlists/internal/numeric"
	"github.com/vk/fnlists/internal/sharedlist"
	"github.com/vk/fnlists/internal/typeregistry"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ListReport describes one published list.
type ListReport struct {
	Socket string `json:"socket" yaml:"socket"`
	Type   string `json:"type" yaml:"type"`
	Len    int    `json:"len" yaml:"len"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	Values any    `json:"values" yaml:"values"`

	text string
}

// TypeReport describes one registry entry.
type TypeReport struct {
	Name      string  `json:"name" yaml:"name"`
	Element   string  `json:"element" yaml:"element"`
	GoType    string  `json:"go_type" yaml:"go_type"`
	ElemSize  uintptr `json:"elem_size" yaml:"elem_size"`
	ElemAlign uintptr `json:"elem_align" yaml:"elem_align"`
	CtyType   string  `json:"cty_type" yaml:"cty_type"`
}

func newListReport(socket, source string, v sharedlist.Value) (ListReport, error) {
	desc := v.Type()
	val, err := v.Cty()
	if err != nil {
		return ListReport{}, fmt.Errorf("socket %s: %w", socket, err)
	}
	raw, err := ctyjson.Marshal(val, desc.CtyType())
	if err != nil {
		return ListReport{}, fmt.Errorf("socket %s: %w", socket, err)
	}
	values, err := oj.Parse(raw)
	if err != nil {
		return ListReport{}, fmt.Errorf("socket %s: %w", socket, err)
	}
	text, err := formatValues(v)
	if err != nil {
		return ListReport{}, fmt.Errorf("socket %s: %w", socket, err)
	}
	return ListReport{
		Socket: socket,
		Type:   desc.Name(),
		Len:    v.Len(),
		Source: source,
		Values: values,
		text:   text,
	}, nil
}

func newTypeReport(d *typeregistry.Descriptor) TypeReport {
	return TypeReport{
		Name:      d.Name(),
		Element:   d.ElemName(),
		GoType:    d.ElemType().String(),
		ElemSize:  d.ElemSize(),
		ElemAlign: d.ElemAlign(),
		CtyType:   d.CtyType().FriendlyName(),
	}
}

// formatValues renders the elements for the text report. It dispatches on
// the descriptor before casting, the way any consumer of an edge must.
func formatValues(v sharedlist.Value) (string, error) {
	switch v.Type().Kind() {
	case typeregistry.Float:
		return joinList(v, sharedlist.Floats, func(f float32) string {
			return strconv.FormatFloat(float64(f), 'g', -1, 32)
		})
	case typeregistry.FVec3:
		return joinList(v, sharedlist.FVec3s, numeric.Vector.String)
	case typeregistry.Int32:
		return joinList(v, sharedlist.Int32s, func(i int32) string { return strconv.FormatInt(int64(i), 10) })
	case typeregistry.Bool:
		return joinList(v, sharedlist.Bools, strconv.FormatBool)
	}
	return "", fmt.Errorf("no formatter for %s", v.Type())
}

func joinList[T sharedlist.Element](v sharedlist.Value, kind sharedlist.Kind[T], format func(T) string) (string, error) {
	l, err := sharedlist.Cast(v, kind)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, l.Len())
	for _, elem := range l.All() {
		parts = append(parts, format(elem))
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

func (a *App) render(w io.Writer, reports any, textTable func() string) error {
	switch a.config.Output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case "yaml":
		out, err := yaml.Marshal(reports)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		_, err := fmt.Fprintln(w, textTable())
		return err
	}
}

func listTable(reports []ListReport) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SOCKET", "TYPE", "LEN", "SOURCE", "VALUES")
	for _, r := range reports {
		t.Row(r.Socket, r.Type, strconv.Itoa(r.Len), r.Source, r.text)
	}
	return t.String()
}

func typeTable(reports []TypeReport) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "ELEMENT", "GO TYPE", "SIZE", "ALIGN", "CTY TYPE")
	for _, r := range reports {
		t.Row(r.Name, r.Element, r.GoType,
			strconv.FormatUint(uint64(r.ElemSize), 10),
			strconv.FormatUint(uint64(r.ElemAlign), 10),
			r.CtyType)
	}
	return t.String()
}
