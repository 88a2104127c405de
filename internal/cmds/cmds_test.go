package cmds

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scenemock/internal/model"
)

func TestCreateNodeSelectsByDefault(t *testing.T) {
	c := New(nil)

	name, err := c.CreateNode("transform", CreateNodeOptions{Name: "group1"})
	require.NoError(t, err)
	assert.Equal(t, "group1", name)

	selected := c.Session().Selection()
	require.Len(t, selected, 1)
	assert.Equal(t, "group1", selected[0].Name)

	_, err = c.CreateNode("transform", CreateNodeOptions{Name: "other", SkipSelect: true})
	require.NoError(t, err)
	selected = c.Session().Selection()
	require.Len(t, selected, 1)
	assert.Equal(t, "group1", selected[0].Name, "skipSelect preserves the selection")
}

func TestCreateNodeUnderParentAndLsLong(t *testing.T) {
	c := New(nil)

	_, err := c.CreateNode("transform", CreateNodeOptions{Name: "group1"})
	require.NoError(t, err)
	_, err = c.CreateNode("transform", CreateNodeOptions{Name: "locator1", Parent: "group1"})
	require.NoError(t, err)

	loc, ok := c.Session().NodeByMatch("group1|locator1")
	require.True(t, ok)
	assert.Equal(t, "locator1", loc.Name)

	got := c.Ls([]string{"locator1"}, LsOptions{Long: true})
	assert.Equal(t, []string{"|group1|locator1"}, got)
}

func TestAddAttrGetAttrSetAttr(t *testing.T) {
	c := New(nil)
	_, err := c.CreateNode("transform", CreateNodeOptions{Name: "locator1"})
	require.NoError(t, err)

	err = c.AddAttr([]string{"locator1"}, AddAttrOptions{LongName: "visibility", DefaultValue: cty.True})
	require.NoError(t, err)

	p := c.Session().PortByMatch("locator1.visibility")
	require.NotNil(t, p)

	v, err := c.GetAttr("locator1.visibility")
	require.NoError(t, err)
	assert.True(t, v.RawEquals(cty.True))

	require.NoError(t, c.SetAttr("locator1.visibility", cty.False))
	v, err = c.GetAttr("locator1.visibility")
	require.NoError(t, err)
	assert.True(t, v.RawEquals(cty.False))
}

func TestAddAttrFlagValidation(t *testing.T) {
	c := New(nil)
	_, err := c.CreateNode("transform", CreateNodeOptions{Name: "locator1"})
	require.NoError(t, err)

	var ambiguous *model.AmbiguousArgumentsError
	err = c.AddAttr([]string{"locator1"}, AddAttrOptions{})
	require.ErrorAs(t, err, &ambiguous)

	err = c.AddAttr([]string{"locator1"}, AddAttrOptions{
		LongName:      "x",
		AttributeType: "bool",
		DataType:      "string",
	})
	require.ErrorAs(t, err, &ambiguous)

	// Short name alone is enough.
	err = c.AddAttr([]string{"locator1"}, AddAttrOptions{ShortName: "v"})
	require.NoError(t, err)
	assert.NotNil(t, c.Session().PortByMatch("locator1.v"))
}

func TestConnectAttrContract(t *testing.T) {
	c := New(nil)
	_, err := c.CreateNode("utility", CreateNodeOptions{Name: "a"})
	require.NoError(t, err)
	_, err = c.CreateNode("utility", CreateNodeOptions{Name: "b"})
	require.NoError(t, err)
	require.NoError(t, c.AddAttr([]string{"a"}, AddAttrOptions{LongName: "output"}))
	require.NoError(t, c.AddAttr([]string{"b"}, AddAttrOptions{LongName: "input"}))

	require.NoError(t, c.ConnectAttr("a.output", "b.input"))

	var dup *model.DuplicateConnectionError
	require.ErrorAs(t, c.ConnectAttr("a.output", "b.input"), &dup)

	require.NoError(t, c.DisconnectAttr("a.output", "b.input"))

	var missing *model.MissingConnectionError
	require.ErrorAs(t, c.DisconnectAttr("a.output", "b.input"), &missing)

	var notFound *model.NotFoundError
	require.ErrorAs(t, c.ConnectAttr("ghost.output", "b.input"), &notFound)
}

func TestConnectionInfo(t *testing.T) {
	c := New(nil)
	for _, name := range []string{"a", "b", "d"} {
		_, err := c.CreateNode("utility", CreateNodeOptions{Name: name})
		require.NoError(t, err)
	}
	require.NoError(t, c.AddAttr([]string{"a"}, AddAttrOptions{LongName: "output"}))
	require.NoError(t, c.AddAttr([]string{"b"}, AddAttrOptions{LongName: "input"}))
	require.NoError(t, c.AddAttr([]string{"d"}, AddAttrOptions{LongName: "input"}))

	require.NoError(t, c.ConnectAttr("a.output", "b.input"))
	require.NoError(t, c.ConnectAttr("a.output", "d.input"))

	res, err := c.ConnectionInfo("b.input", ConnectionInfoOptions{SourceFromDestination: true})
	require.NoError(t, err)
	assert.Equal(t, "a.output", res.Source)

	res, err = c.ConnectionInfo("a.output", ConnectionInfoOptions{DestinationFromSource: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.input", "d.input"}, res.Destinations)

	// Unconnected destination answers with the empty plug.
	require.NoError(t, c.AddAttr([]string{"a"}, AddAttrOptions{LongName: "spare"}))
	res, err = c.ConnectionInfo("a.spare", ConnectionInfoOptions{SourceFromDestination: true})
	require.NoError(t, err)
	assert.Equal(t, "", res.Source)

	var ambiguous *model.AmbiguousArgumentsError
	_, err = c.ConnectionInfo("b.input", ConnectionInfoOptions{})
	require.ErrorAs(t, err, &ambiguous)
	_, err = c.ConnectionInfo("b.input", ConnectionInfoOptions{SourceFromDestination: true, DestinationFromSource: true})
	require.ErrorAs(t, err, &ambiguous)
}

func TestDeleteCascades(t *testing.T) {
	c := New(nil)
	_, err := c.CreateNode("utility", CreateNodeOptions{Name: "a"})
	require.NoError(t, err)
	_, err = c.CreateNode("utility", CreateNodeOptions{Name: "b"})
	require.NoError(t, err)
	require.NoError(t, c.AddAttr([]string{"a"}, AddAttrOptions{LongName: "output"}))
	require.NoError(t, c.AddAttr([]string{"b"}, AddAttrOptions{LongName: "input"}))
	require.NoError(t, c.ConnectAttr("a.output", "b.input"))

	require.NoError(t, c.Delete("a"))

	assert.False(t, c.ObjExists("a"))
	assert.False(t, c.ObjExists("a.output"))
	res, err := c.ConnectionInfo("b.input", ConnectionInfoOptions{SourceFromDestination: true})
	require.NoError(t, err)
	assert.Equal(t, "", res.Source)

	var notFound *model.NotFoundError
	require.ErrorAs(t, c.Delete("a"), &notFound)
}

func TestDeleteAttr(t *testing.T) {
	c := New(nil)
	_, err := c.CreateNode("transform", CreateNodeOptions{Name: "locator1"})
	require.NoError(t, err)
	require.NoError(t, c.AddAttr([]string{"locator1"}, AddAttrOptions{LongName: "visibility"}))
	require.NoError(t, c.AddAttr([]string{"locator1"}, AddAttrOptions{LongName: "radius"}))

	// Full address form.
	require.NoError(t, c.DeleteAttr([]string{"locator1.visibility"}, ""))
	assert.False(t, c.ObjExists("locator1.visibility"))

	// Node plus attribute flag form.
	require.NoError(t, c.DeleteAttr([]string{"locator1"}, "radius"))
	assert.False(t, c.ObjExists("locator1.radius"))
}

func TestListAttr(t *testing.T) {
	c := New(nil)
	_, err := c.CreateNode("transform", CreateNodeOptions{Name: "locator1"})
	require.NoError(t, err)
	require.NoError(t, c.AddAttr([]string{"locator1"}, AddAttrOptions{LongName: "visibility"}))
	require.NoError(t, c.AddAttr([]string{"locator1"}, AddAttrOptions{LongName: "radius"}))

	got := c.ListAttr([]string{"locator1"}, ListAttrOptions{})
	assert.Empty(t, cmp.Diff([]string{"visibility", "radius"}, got))

	// Duplicate patterns resolve each node once.
	got = c.ListAttr([]string{"locator1", "locator*"}, ListAttrOptions{UserDefined: true})
	assert.Empty(t, cmp.Diff([]string{"visibility", "radius"}, got))
}

func TestLsFiltersAndSorts(t *testing.T) {
	c := New(nil)
	_, err := c.CreateNode("transform", CreateNodeOptions{Name: "zed"})
	require.NoError(t, err)
	_, err = c.CreateNode("shape", CreateNodeOptions{Name: "shape1"})
	require.NoError(t, err)
	_, err = c.CreateNode("transform", CreateNodeOptions{Name: "abe"})
	require.NoError(t, err)

	// Sorted by type first, then name.
	assert.Equal(t, []string{"shape1", "abe", "zed"}, c.Ls(nil, LsOptions{}))

	assert.Equal(t, []string{"abe", "zed"}, c.Ls(nil, LsOptions{Type: "transform"}))

	// The most recent CreateNode call owns the selection.
	assert.Equal(t, []string{"abe"}, c.Ls(nil, LsOptions{Selection: true}))

	// "*e*" needs at least one word character on each side of the "e", so
	// it takes "shape1" and "zed" but not "abe".
	assert.Equal(t, []string{"shape1", "zed"}, c.Ls([]string{"*e*"}, LsOptions{}))

	assert.Equal(t, []string{"|zed"}, c.Ls([]string{"*e*"}, LsOptions{Long: true, Type: "transform"}))
}

func TestNodeTypeAndObjExists(t *testing.T) {
	c := New(nil)
	_, err := c.CreateNode("transform", CreateNodeOptions{Name: "locator1"})
	require.NoError(t, err)

	typ, err := c.NodeType("locator1")
	require.NoError(t, err)
	assert.Equal(t, "transform", typ)

	_, err = c.NodeType("ghost")
	var notFound *model.NotFoundError
	require.ErrorAs(t, err, &notFound)

	assert.True(t, c.ObjExists("locator*"))
	assert.False(t, c.ObjExists("ghost"))
}

func TestSelectAndParent(t *testing.T) {
	c := New(nil)
	for _, name := range []string{"a", "b", "group1"} {
		_, err := c.CreateNode("transform", CreateNodeOptions{Name: name})
		require.NoError(t, err)
	}

	c.Select([]string{"a", "b"})
	selected := c.Session().Selection()
	require.Len(t, selected, 2)

	require.NoError(t, c.Parent([]string{"a", "b", "group1"}, false))
	a, _ := c.Session().NodeByName("a")
	assert.Equal(t, "|group1|a", c.Session().DagPath(a.ID))

	require.NoError(t, c.Parent([]string{"a"}, true))
	assert.Equal(t, "|a", c.Session().DagPath(a.ID))
}

func TestParentRejectsOwnDescendant(t *testing.T) {
	c := New(nil)
	_, err := c.CreateNode("transform", CreateNodeOptions{Name: "group1"})
	require.NoError(t, err)
	_, err = c.CreateNode("transform", CreateNodeOptions{Name: "locator1", Parent: "group1"})
	require.NoError(t, err)

	var cycle *model.CycleError
	require.ErrorAs(t, c.Parent([]string{"group1", "locator1"}, false), &cycle)

	// The hierarchy survives and is still walkable.
	loc, err := c.Session().NodeByName("locator1")
	require.NoError(t, err)
	assert.Equal(t, "|group1|locator1", c.Session().DagPath(loc.ID))
}
