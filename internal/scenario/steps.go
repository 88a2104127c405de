package scenario

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/scenemock/internal/cmds"
)

// Step is one executable command block of a scenario. Attribute values stay
// as hcl.Expression until the step runs.
type Step interface {
	// Describe returns a short label for logging.
	Describe() string
	// Apply executes the step against the command layer, writing any
	// query output to out.
	Apply(ctx context.Context, c *cmds.Cmds, out io.Writer) error
}

// CreateNodeStep mirrors the createNode command.
type CreateNodeStep struct {
	Type       string
	Name       hcl.Expression `hcl:"name,optional"`
	Parent     hcl.Expression `hcl:"parent,optional"`
	SkipSelect hcl.Expression `hcl:"skip_select,optional"`
}

func (s *CreateNodeStep) Describe() string { return "create_node " + s.Type }

func (s *CreateNodeStep) Apply(ctx context.Context, c *cmds.Cmds, out io.Writer) error {
	name, err := evalString(s.Name)
	if err != nil {
		return err
	}
	parent, err := evalString(s.Parent)
	if err != nil {
		return err
	}
	skipSelect, err := evalBool(s.SkipSelect)
	if err != nil {
		return err
	}
	_, err = c.CreateNode(s.Type, cmds.CreateNodeOptions{
		Name:       name,
		Parent:     parent,
		SkipSelect: skipSelect,
	})
	return err
}

// AddAttrStep mirrors the addAttr command; its label is the node pattern
// receiving the attribute.
type AddAttrStep struct {
	Target        string
	LongName      hcl.Expression `hcl:"long_name,optional"`
	ShortName     hcl.Expression `hcl:"short_name,optional"`
	NiceName      hcl.Expression `hcl:"nice_name,optional"`
	AttributeType hcl.Expression `hcl:"attribute_type,optional"`
	DataType      hcl.Expression `hcl:"data_type,optional"`
	DefaultValue  hcl.Expression `hcl:"default_value,optional"`
}

func (s *AddAttrStep) Describe() string { return "add_attr " + s.Target }

func (s *AddAttrStep) Apply(ctx context.Context, c *cmds.Cmds, out io.Writer) error {
	longName, err := evalString(s.LongName)
	if err != nil {
		return err
	}
	shortName, err := evalString(s.ShortName)
	if err != nil {
		return err
	}
	niceName, err := evalString(s.NiceName)
	if err != nil {
		return err
	}
	attrType, err := evalString(s.AttributeType)
	if err != nil {
		return err
	}
	dataType, err := evalString(s.DataType)
	if err != nil {
		return err
	}
	defaultValue, err := evalValue(s.DefaultValue)
	if err != nil {
		return err
	}
	return c.AddAttr([]string{s.Target}, cmds.AddAttrOptions{
		LongName:      longName,
		ShortName:     shortName,
		NiceName:      niceName,
		AttributeType: attrType,
		DataType:      dataType,
		DefaultValue:  defaultValue,
	})
}

// DeleteAttrStep mirrors the deleteAttr command.
type DeleteAttrStep struct {
	Target    string
	Attribute hcl.Expression `hcl:"attribute,optional"`
}

func (s *DeleteAttrStep) Describe() string { return "delete_attr " + s.Target }

func (s *DeleteAttrStep) Apply(ctx context.Context, c *cmds.Cmds, out io.Writer) error {
	attribute, err := evalString(s.Attribute)
	if err != nil {
		return err
	}
	return c.DeleteAttr([]string{s.Target}, attribute)
}

// SetAttrStep mirrors the setAttr command; its label is the attribute
// address.
type SetAttrStep struct {
	Target string
	Value  hcl.Expression `hcl:"value"`
}

func (s *SetAttrStep) Describe() string { return "set_attr " + s.Target }

func (s *SetAttrStep) Apply(ctx context.Context, c *cmds.Cmds, out io.Writer) error {
	value, err := evalValue(s.Value)
	if err != nil {
		return err
	}
	return c.SetAttr(s.Target, value)
}

// GetAttrStep mirrors the getAttr command and prints the value.
type GetAttrStep struct {
	Target string
}

func (s *GetAttrStep) Describe() string { return "get_attr " + s.Target }

func (s *GetAttrStep) Apply(ctx context.Context, c *cmds.Cmds, out io.Writer) error {
	v, err := c.GetAttr(s.Target)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %s\n", s.Target, v.GoString())
	return nil
}

// ConnectAttrStep mirrors the connectAttr command.
type ConnectAttrStep struct {
	Src hcl.Expression `hcl:"src"`
	Dst hcl.Expression `hcl:"dst"`
}

func (s *ConnectAttrStep) Describe() string { return "connect_attr" }

func (s *ConnectAttrStep) Apply(ctx context.Context, c *cmds.Cmds, out io.Writer) error {
	src, dst, err := s.endpoints()
	if err != nil {
		return err
	}
	return c.ConnectAttr(src, dst)
}

func (s *ConnectAttrStep) endpoints() (string, string, error) {
	src, err := evalString(s.Src)
	if err != nil {
		return "", "", err
	}
	dst, err := evalString(s.Dst)
	if err != nil {
		return "", "", err
	}
	return src, dst, nil
}

// DisconnectAttrStep mirrors the disconnectAttr command.
type DisconnectAttrStep struct {
	Src hcl.Expression `hcl:"src"`
	Dst hcl.Expression `hcl:"dst"`
}

func (s *DisconnectAttrStep) Describe() string { return "disconnect_attr" }

func (s *DisconnectAttrStep) Apply(ctx context.Context, c *cmds.Cmds, out io.Writer) error {
	src, err := evalString(s.Src)
	if err != nil {
		return err
	}
	dst, err := evalString(s.Dst)
	if err != nil {
		return err
	}
	return c.DisconnectAttr(src, dst)
}

// DeleteStep mirrors the delete command.
type DeleteStep struct {
	Name string
}

func (s *DeleteStep) Describe() string { return "delete " + s.Name }

func (s *DeleteStep) Apply(ctx context.Context, c *cmds.Cmds, out io.Writer) error {
	return c.Delete(s.Name)
}

// ParentStep mirrors the parent command.
type ParentStep struct {
	Objects hcl.Expression `hcl:"objects"`
	World   hcl.Expression `hcl:"world,optional"`
}

func (s *ParentStep) Describe() string { return "parent" }

func (s *ParentStep) Apply(ctx context.Context, c *cmds.Cmds, out io.Writer) error {
	objects, err := evalStringSlice(s.Objects)
	if err != nil {
		return err
	}
	world, err := evalBool(s.World)
	if err != nil {
		return err
	}
	return c.Parent(objects, world)
}

// SelectStep mirrors the select command.
type SelectStep struct {
	Names hcl.Expression `hcl:"names"`
}

func (s *SelectStep) Describe() string { return "select" }

func (s *SelectStep) Apply(ctx context.Context, c *cmds.Cmds, out io.Writer) error {
	names, err := evalStringSlice(s.Names)
	if err != nil {
		return err
	}
	c.Select(names)
	return nil
}

// LsStep mirrors the ls command and prints one matching node per line.
type LsStep struct {
	Pattern   hcl.Expression `hcl:"pattern,optional"`
	Long      hcl.Expression `hcl:"long,optional"`
	Selection hcl.Expression `hcl:"selection,optional"`
	Type      hcl.Expression `hcl:"type,optional"`
}

func (s *LsStep) Describe() string { return "ls" }

func (s *LsStep) Apply(ctx context.Context, c *cmds.Cmds, out io.Writer) error {
	pattern, err := evalString(s.Pattern)
	if err != nil {
		return err
	}
	long, err := evalBool(s.Long)
	if err != nil {
		return err
	}
	selection, err := evalBool(s.Selection)
	if err != nil {
		return err
	}
	typ, err := evalString(s.Type)
	if err != nil {
		return err
	}

	var patterns []string
	if pattern != "" {
		patterns = []string{pattern}
	}
	names := c.Ls(patterns, cmds.LsOptions{Long: long, Selection: selection, Type: typ})
	if len(names) > 0 {
		fmt.Fprintln(out, strings.Join(names, "\n"))
	}
	return nil
}
