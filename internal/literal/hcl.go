package literal

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/fnlists/internal/typeregistry"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "list", LabelNames: []string{"name"}},
	},
}

var listSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type", Required: true},
		{Name: "values", Required: true},
	},
}

// parseHCL reads every list block of an HCL file.
func parseHCL(filename string, src []byte) ([]definition, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: %w", filename, diags)
	}

	defs := make([]definition, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		def, diags := decodeListBlock(filename, block)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s: %w", filename, diags)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func decodeListBlock(filename string, block *hcl.Block) (definition, hcl.Diagnostics) {
	name := block.Labels[0]
	if err := validateName(name); err != nil {
		return definition{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid list name",
			Detail:   err.Error(),
			Subject:  block.LabelRanges[0].Ptr(),
		}}
	}

	attrs, diags := block.Body.Content(listSchema)
	if diags.HasErrors() {
		return definition{}, diags
	}

	desc, diags := typeKeyword(attrs.Attributes["type"].Expr)
	if diags.HasErrors() {
		return definition{}, diags
	}

	valuesAttr := attrs.Attributes["values"]
	val, diags := valuesAttr.Expr.Value(nil)
	if diags.HasErrors() {
		return definition{}, diags
	}

	return definition{name: name, source: filename, desc: desc, values: val}, nil
}

// typeKeyword resolves a bare type keyword such as `float_list` or `int32`.
func typeKeyword(expr hcl.Expression) (*typeregistry.Descriptor, hcl.Diagnostics) {
	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() || len(traversal) != 1 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be a bare keyword like float_list, fvec3_list, int32_list or bool_list.",
			Subject:  expr.Range().Ptr(),
		}}
	}

	desc, err := resolveType(traversal.RootName())
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type",
			Detail:   err.Error(),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return desc, nil
}
