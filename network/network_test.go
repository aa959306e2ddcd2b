package network_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wardrop/network"
)

// TestAddNode_EmptyID verifies that an empty node ID is rejected.
func TestAddNode_EmptyID(t *testing.T) {
	net := network.New()

	_, err := net.AddNode("")
	assert.ErrorIs(t, err, network.ErrEmptyNodeID, "empty node ID must error")
}

// TestAddNode_Idempotent verifies that re-adding an existing ID returns the
// same node instance.
func TestAddNode_Idempotent(t *testing.T) {
	net := network.New()

	first, err := net.AddNode("1")
	require.NoError(t, err)
	second, err := net.AddNode("1")
	require.NoError(t, err)

	assert.Same(t, first, second, "AddNode must be idempotent per ID")
	assert.Equal(t, 1, net.NodeCount())
}

// TestAddLink_CreatesEndpointsAndAdjacency verifies node auto-creation and
// out/in adjacency bookkeeping.
func TestAddLink_CreatesEndpointsAndAdjacency(t *testing.T) {
	net := network.New()

	link, err := net.AddLink("1", "2", network.LinkParams{Capacity: 100, FreeFlowTime: 10, Alpha: 0.15, Beta: 4})
	require.NoError(t, err)

	assert.Equal(t, network.LinkKey{From: "1", To: "2"}, link.Key())
	assert.Equal(t, 10.0, link.Cost, "initial cost must be free-flow time")
	assert.Zero(t, link.Flow, "initial flow must be zero")

	src, err := net.Node("1")
	require.NoError(t, err)
	dst, err := net.Node("2")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, src.Out)
	assert.Equal(t, []string{"1"}, dst.In)
	assert.True(t, math.IsInf(src.Label, 1), "fresh nodes start with +Inf label")
}

// TestAddLink_Duplicate verifies the one-link-per-ordered-pair invariant.
func TestAddLink_Duplicate(t *testing.T) {
	net := network.New()

	_, err := net.AddLink("1", "2", network.LinkParams{Capacity: 100, FreeFlowTime: 10})
	require.NoError(t, err)
	_, err = net.AddLink("1", "2", network.LinkParams{Capacity: 50, FreeFlowTime: 5})
	assert.ErrorIs(t, err, network.ErrDuplicateLink)

	// The reverse direction is a distinct link.
	_, err = net.AddLink("2", "1", network.LinkParams{Capacity: 100, FreeFlowTime: 10})
	assert.NoError(t, err, "reverse link must be independent")
}

// TestAddLink_BadParams verifies parameter validation.
func TestAddLink_BadParams(t *testing.T) {
	net := network.New()

	_, err := net.AddLink("1", "2", network.LinkParams{Capacity: 100, FreeFlowTime: 0})
	assert.ErrorIs(t, err, network.ErrBadLink, "zero free-flow time must error")

	_, err = net.AddLink("1", "2", network.LinkParams{Capacity: -1, FreeFlowTime: 10})
	assert.ErrorIs(t, err, network.ErrBadLink, "negative capacity must error")
}

// TestAddDemand_ExclusionRules verifies that zero and self-referential
// demand never enter the model, and negative demand errors.
func TestAddDemand_ExclusionRules(t *testing.T) {
	net := network.New()

	require.NoError(t, net.AddDemand("1", "1", 10), "self demand is silently dropped")
	require.NoError(t, net.AddDemand("1", "2", 0), "zero demand is silently dropped")
	assert.Zero(t, net.TripCount())
	assert.Zero(t, net.ZoneCount(), "dropped entries must not create zones")

	assert.ErrorIs(t, net.AddDemand("1", "2", -5), network.ErrBadDemand)

	require.NoError(t, net.AddDemand("1", "2", 50))
	assert.Equal(t, 1, net.TripCount())
	assert.Equal(t, 50.0, net.DemandBetween("1", "2"))
	assert.Zero(t, net.DemandBetween("2", "1"), "absent pair has zero demand")
}

// TestAddDemand_ZonesAndDestList verifies zone creation and the origin
// zone's destination list.
func TestAddDemand_ZonesAndDestList(t *testing.T) {
	net := network.New()

	require.NoError(t, net.AddDemand("1", "2", 10))
	require.NoError(t, net.AddDemand("1", "3", 20))
	require.NoError(t, net.AddDemand("2", "3", 5))

	assert.Equal(t, 3, net.ZoneCount())
	assert.Equal(t, []string{"2", "3"}, net.Zone("1").DestList)
	assert.Equal(t, []string{"3"}, net.Zone("2").DestList)
	assert.Empty(t, net.Zone("3").DestList, "pure destination zone has no dest list")
	assert.Equal(t, []string{"1", "2"}, net.OriginZones())
	assert.Equal(t, 35.0, net.TotalDemand())
}

// TestAddDemand_Accumulates verifies that repeated entries for the same OD
// pair accumulate volume.
func TestAddDemand_Accumulates(t *testing.T) {
	net := network.New()

	require.NoError(t, net.AddDemand("1", "2", 10))
	require.NoError(t, net.AddDemand("1", "2", 15))

	assert.Equal(t, 1, net.TripCount())
	assert.Equal(t, 25.0, net.DemandBetween("1", "2"))
}

// TestScaleCapacity verifies scenario capacity reduction, clamping, and
// restoration by Reset.
func TestScaleCapacity(t *testing.T) {
	net := network.New()
	link, err := net.AddLink("1", "2", network.LinkParams{Capacity: 100, FreeFlowTime: 10})
	require.NoError(t, err)

	assert.ErrorIs(t, link.ScaleCapacity(1.5), network.ErrBadCapacityScale)

	require.NoError(t, link.ScaleCapacity(-0.4))
	assert.InDelta(t, 60.0, link.Capacity, 1e-12)

	// Cumulative scale clamps at zero.
	require.NoError(t, link.ScaleCapacity(-1))
	assert.Zero(t, link.Capacity)

	net.Reset()
	assert.Equal(t, 100.0, link.Capacity, "Reset must restore max capacity")
}

// TestResetFlow verifies that ResetFlow restores the free-flow state without
// touching capacity.
func TestResetFlow(t *testing.T) {
	net := network.New()
	link, err := net.AddLink("1", "2", network.LinkParams{Capacity: 100, FreeFlowTime: 10})
	require.NoError(t, err)
	require.NoError(t, link.ScaleCapacity(-0.5))

	link.Flow = 42
	link.Cost = 99

	net.ResetFlow()
	assert.Zero(t, link.Flow)
	assert.Equal(t, 10.0, link.Cost)
	assert.Equal(t, 50.0, link.Capacity, "ResetFlow must not restore capacity")
}

// TestLinks_InsertionOrder verifies deterministic link iteration order.
func TestLinks_InsertionOrder(t *testing.T) {
	net := network.New()
	keys := []network.LinkKey{{From: "3", To: "1"}, {From: "1", To: "2"}, {From: "2", To: "3"}}
	for _, k := range keys {
		_, err := net.AddLink(k.From, k.To, network.LinkParams{Capacity: 10, FreeFlowTime: 1})
		require.NoError(t, err)
	}

	assert.Equal(t, keys, net.LinkKeys(), "iteration must follow insertion order")
	links := net.Links()
	require.Len(t, links, 3)
	for i, k := range keys {
		assert.Equal(t, k, links[i].Key())
	}
}

// TestLookupMisses verifies sentinel errors for missing nodes and links.
func TestLookupMisses(t *testing.T) {
	net := network.New()

	_, err := net.Node("404")
	assert.ErrorIs(t, err, network.ErrNodeNotFound)

	_, err = net.Link(network.LinkKey{From: "1", To: "2"})
	assert.ErrorIs(t, err, network.ErrLinkNotFound)

	assert.False(t, net.HasNode("404"))
}
