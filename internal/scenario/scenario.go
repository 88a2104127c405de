package scenario

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/scenemock/internal/ctxlog"
	"github.com/vk/scenemock/internal/fsutil"
)

// Scenario is an ordered list of scripting steps loaded from one or more
// .hcl files.
type Scenario struct {
	Steps []Step
}

// scenarioSchema declares every command block the format accepts. Using a
// body schema instead of struct decoding keeps blocks in source order
// across different block types.
var scenarioSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "create_node", LabelNames: []string{"type"}},
		{Type: "add_attr", LabelNames: []string{"target"}},
		{Type: "delete_attr", LabelNames: []string{"target"}},
		{Type: "set_attr", LabelNames: []string{"target"}},
		{Type: "get_attr", LabelNames: []string{"target"}},
		{Type: "connect_attr"},
		{Type: "disconnect_attr"},
		{Type: "delete", LabelNames: []string{"name"}},
		{Type: "parent"},
		{Type: "select"},
		{Type: "ls"},
	},
}

// Load discovers every .hcl file under the given path (a file or a
// directory) and aggregates their steps into one Scenario. Files load in
// lexical walk order; steps within a file keep source order.
func Load(ctx context.Context, path string) (*Scenario, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to discover scenario files in %s: %w", path, err)
	}
	logger.Debug("Scenario files discovered.", "count", len(files))

	scn := &Scenario{}
	parser := hclparse.NewParser()
	for _, file := range files {
		steps, err := loadFile(file, parser)
		if err != nil {
			return nil, err
		}
		scn.Steps = append(scn.Steps, steps...)
	}
	logger.Debug("Scenario loaded.", "steps", len(scn.Steps))
	return scn, nil
}

// Parse loads a scenario from an in-memory HCL document. The filename only
// labels diagnostics.
func Parse(filename string, src []byte) (*Scenario, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", filename, diags)
	}
	steps, err := decodeBody(filename, hclFile.Body)
	if err != nil {
		return nil, err
	}
	return &Scenario{Steps: steps}, nil
}

func loadFile(filePath string, parser *hclparse.Parser) ([]Step, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", filePath, diags)
	}
	return decodeBody(filePath, hclFile.Body)
}

func decodeBody(filename string, body hcl.Body) ([]Step, error) {
	content, diags := body.Content(scenarioSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scenario %s: %w", filename, diags)
	}

	var steps []Step
	for _, block := range content.Blocks {
		step, err := decodeBlock(block)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", block.DefRange.String(), err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func decodeBlock(block *hcl.Block) (Step, error) {
	var step Step
	switch block.Type {
	case "create_node":
		step = &CreateNodeStep{Type: block.Labels[0]}
	case "add_attr":
		step = &AddAttrStep{Target: block.Labels[0]}
	case "delete_attr":
		step = &DeleteAttrStep{Target: block.Labels[0]}
	case "set_attr":
		step = &SetAttrStep{Target: block.Labels[0]}
	case "get_attr":
		step = &GetAttrStep{Target: block.Labels[0]}
	case "connect_attr":
		step = &ConnectAttrStep{}
	case "disconnect_attr":
		step = &DisconnectAttrStep{}
	case "delete":
		step = &DeleteStep{Name: block.Labels[0]}
	case "parent":
		step = &ParentStep{}
	case "select":
		step = &SelectStep{}
	case "ls":
		step = &LsStep{}
	default:
		// Unreachable: the schema rejects unknown block types.
		return nil, fmt.Errorf("unknown block type %q", block.Type)
	}

	if diags := gohcl.DecodeBody(block.Body, nil, step); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s block: %w", block.Type, diags)
	}
	return step, nil
}
