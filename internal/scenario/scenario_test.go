package scenario

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scenemock/internal/cmds"
	"github.com/vk/scenemock/internal/model"
)

func runScenario(t *testing.T, src string) (*cmds.Cmds, string) {
	t.Helper()

	scn, err := Parse("test.hcl", []byte(src))
	require.NoError(t, err)

	c := cmds.New(nil)
	var out bytes.Buffer
	err = NewRunner(c, &out).Run(context.Background(), scn)
	require.NoError(t, err)
	return c, out.String()
}

func TestParseKeepsSourceOrder(t *testing.T) {
	scn, err := Parse("test.hcl", []byte(`
create_node "transform" {
  name = "group1"
}

add_attr "group1" {
  long_name = "visibility"
}

create_node "transform" {
  name = "locator1"
}
`))
	require.NoError(t, err)
	require.Len(t, scn.Steps, 3)
	assert.Equal(t, "create_node transform", scn.Steps[0].Describe())
	assert.Equal(t, "add_attr group1", scn.Steps[1].Describe())
	assert.Equal(t, "create_node transform", scn.Steps[2].Describe())
}

func TestParseRejectsUnknownBlock(t *testing.T) {
	_, err := Parse("test.hcl", []byte(`
render "group1" {
}
`))
	require.Error(t, err)
}

func TestRunBuildsHierarchy(t *testing.T) {
	c, out := runScenario(t, `
create_node "transform" {
  name = "group1"
}

create_node "transform" {
  name   = "locator1"
  parent = "group1"
}

ls {
  pattern = "locator1"
  long    = true
}
`)

	assert.Equal(t, "|group1|locator1\n", out)
	assert.True(t, c.ObjExists("group1|locator1"))
}

func TestRunAttributeLifecycle(t *testing.T) {
	c, out := runScenario(t, `
create_node "transform" {
  name = "locator1"
}

add_attr "locator1" {
  long_name     = "visibility"
  attribute_type = "bool"
  default_value = true
}

get_attr "locator1.visibility" {
}

set_attr "locator1.visibility" {
  value = false
}
`)

	assert.True(t, strings.HasPrefix(out, "locator1.visibility:"))
	v, err := c.GetAttr("locator1.visibility")
	require.NoError(t, err)
	assert.True(t, v.RawEquals(cty.False))
}

func TestRunConnections(t *testing.T) {
	c, _ := runScenario(t, `
create_node "utility" {
  name = "a"
}

create_node "utility" {
  name = "b"
}

add_attr "a" {
  long_name = "output"
}

add_attr "b" {
  long_name = "input"
}

connect_attr {
  src = "a.output"
  dst = "b.input"
}
`)

	res, err := c.ConnectionInfo("b.input", cmds.ConnectionInfoOptions{SourceFromDestination: true})
	require.NoError(t, err)
	assert.Equal(t, "a.output", res.Source)
}

func TestRunParentSelectDelete(t *testing.T) {
	c, out := runScenario(t, `
create_node "transform" {
  name = "a"
}

create_node "transform" {
  name = "b"
}

create_node "transform" {
  name = "group1"
}

parent {
  objects = ["a", "b", "group1"]
}

select {
  names = ["a", "b"]
}

delete "b" {
}

ls {
  long = true
}
`)

	assert.Equal(t, "|group1|a\n|group1\n", out)
	selected := c.Session().Selection()
	require.Len(t, selected, 1)
	assert.Equal(t, "a", selected[0].Name)
}

func TestRunStopsAtFailingStep(t *testing.T) {
	scn, err := Parse("test.hcl", []byte(`
create_node "transform" {
  name = "a"
}

delete "ghost" {
}

create_node "transform" {
  name = "never_created"
}
`))
	require.NoError(t, err)

	c := cmds.New(nil)
	var out bytes.Buffer
	err = NewRunner(c, &out).Run(context.Background(), scn)
	require.Error(t, err)

	var notFound *model.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "step 2")
	assert.False(t, c.ObjExists("never_created"))
}
