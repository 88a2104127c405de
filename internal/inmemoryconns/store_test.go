package inmemoryconns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/scenemock/internal/model"
)

func TestConnectionRoundTrip(t *testing.T) {
	s := New()

	c, err := s.CreateConnection(1, 2)
	require.NoError(t, err)

	found, ok := s.ConnectionByPorts(1, 2)
	require.True(t, ok)
	assert.Equal(t, c.ID, found.ID)

	require.NoError(t, s.RemoveConnection(c.ID))
	_, ok = s.ConnectionByPorts(1, 2)
	assert.False(t, ok)
}

func TestDuplicatePairRejected(t *testing.T) {
	s := New()

	_, err := s.CreateConnection(1, 2)
	require.NoError(t, err)

	var dup *model.DuplicateConnectionError
	_, err = s.CreateConnection(1, 2)
	require.ErrorAs(t, err, &dup)

	// The reversed pair is a distinct edge.
	_, err = s.CreateConnection(2, 1)
	require.NoError(t, err)
}

func TestFanInFanOut(t *testing.T) {
	s := New()

	// 1 -> 3, 2 -> 3 (fan-in), 3 -> 4, 3 -> 5 (fan-out).
	_, err := s.CreateConnection(1, 3)
	require.NoError(t, err)
	_, err = s.CreateConnection(2, 3)
	require.NoError(t, err)
	_, err = s.CreateConnection(3, 4)
	require.NoError(t, err)
	_, err = s.CreateConnection(3, 5)
	require.NoError(t, err)

	inputs := s.InputConnections(3)
	require.Len(t, inputs, 2)
	assert.Equal(t, model.PortID(1), inputs[0].Src)
	assert.Equal(t, model.PortID(2), inputs[1].Src)

	outputs := s.OutputConnections(3)
	require.Len(t, outputs, 2)
	assert.Equal(t, model.PortID(4), outputs[0].Dst)
	assert.Equal(t, model.PortID(5), outputs[1].Dst)

	assert.Len(t, s.ConnectionsByPort(3), 4)
	assert.Len(t, s.ConnectionsByPort(1), 1)
	assert.Empty(t, s.ConnectionsByPort(9))
}

func TestRemoveUnknownConnection(t *testing.T) {
	s := New()
	var notFound *model.NotFoundError
	require.ErrorAs(t, s.RemoveConnection(42), &notFound)
}
