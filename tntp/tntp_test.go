package tntp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wardrop/costfn"
	"github.com/katalvlaran/wardrop/network"
	"github.com/katalvlaran/wardrop/tntp"
)

const netFixture = `<NUMBER OF NODES> 3
<NUMBER OF LINKS> 3
<END OF METADATA>

~ init_node	term_node	capacity	length	free_flow_time	b	power	speed	toll	link_type
1	2	100	1	10	0.15	4	60	0	1 ;
2	3	200	1	5	0.15	4	60	0	1 ;
1	3	50	2	30	0.15	4	60	0	1 ;
`

const demandFixture = `init_node	term_node	demand
1	3	40
1	1	7
2	3	0
2	3	10
`

// TestReadNetwork verifies link parsing, node creation and metadata
// skipping on a raw dataset-style fixture.
func TestReadNetwork(t *testing.T) {
	net, err := tntp.ReadNetwork(strings.NewReader(netFixture))
	require.NoError(t, err)

	assert.Equal(t, 3, net.NodeCount())
	assert.Equal(t, 3, net.LinkCount())

	link, err := net.Link(network.LinkKey{From: "1", To: "2"})
	require.NoError(t, err)
	assert.Equal(t, 100.0, link.Capacity)
	assert.Equal(t, 10.0, link.FreeFlowTime)
	assert.Equal(t, 0.15, link.Alpha)
	assert.Equal(t, 4.0, link.Beta)
	assert.Equal(t, 60.0, link.SpeedLimit)
	assert.Equal(t, "1", link.LinkType)
}

// TestReadNetwork_NormalisesNodeIDs verifies that integral float ids
// ("1.0") collapse to their integer spelling.
func TestReadNetwork_NormalisesNodeIDs(t *testing.T) {
	fixture := `init_node	term_node	capacity	length	free_flow_time	b	power	speed	toll	link_type
1.0	2.0	100	1	10	0.15	4	60	0	1
`
	net, err := tntp.ReadNetwork(strings.NewReader(fixture))
	require.NoError(t, err)

	_, err = net.Link(network.LinkKey{From: "1", To: "2"})
	assert.NoError(t, err)
}

// TestReadDemand verifies volume loading and the skip rules for
// intra-zonal and zero-volume records.
func TestReadDemand(t *testing.T) {
	net, err := tntp.ReadNetwork(strings.NewReader(netFixture))
	require.NoError(t, err)
	require.NoError(t, tntp.ReadDemand(strings.NewReader(demandFixture), net))

	assert.Equal(t, 2, net.TripCount(), "self and zero records are dropped")
	assert.Equal(t, 40.0, net.DemandBetween("1", "3"))
	assert.Equal(t, 10.0, net.DemandBetween("2", "3"))
	assert.Equal(t, 50.0, net.TotalDemand())
}

// TestReadNetwork_Errors verifies the parsing sentinels.
func TestReadNetwork_Errors(t *testing.T) {
	_, err := tntp.ReadNetwork(strings.NewReader(""))
	assert.ErrorIs(t, err, tntp.ErrNoHeader)

	_, err = tntp.ReadNetwork(strings.NewReader("init_node\tterm_node\tcapacity\n"))
	assert.ErrorIs(t, err, tntp.ErrMissingColumn)

	bad := `init_node	term_node	capacity	length	free_flow_time	b	power	speed	toll	link_type
1	2	not-a-number	1	10	0.15	4	60	0	1
`
	_, err = tntp.ReadNetwork(strings.NewReader(bad))
	assert.ErrorIs(t, err, tntp.ErrBadRow)

	short := `init_node	term_node	capacity	length	free_flow_time	b	power	speed	toll	link_type
1	2	100
`
	_, err = tntp.ReadNetwork(strings.NewReader(short))
	assert.ErrorIs(t, err, tntp.ErrBadRow)
}

// TestDefaultDemandPath verifies the dataset naming convention.
func TestDefaultDemandPath(t *testing.T) {
	assert.Equal(t, "SiouxFalls_trips.tntp", tntp.DefaultDemandPath("SiouxFalls_net.tntp"))
	assert.Equal(t, "data/Anaheim_trips.tntp", tntp.DefaultDemandPath("data/Anaheim_net.tntp"))
	assert.Equal(t, "trips.tntp", tntp.DefaultDemandPath("net.tntp"))
}

// TestWriteFlows verifies the result-file layout on a hand-assigned
// network: header block, column row, then per-link flow and travel time
// evaluated at maximum capacity.
func TestWriteFlows(t *testing.T) {
	net := network.New()
	link, err := net.AddLink("1", "2", network.LinkParams{
		Capacity: 100, FreeFlowTime: 10, Alpha: 0.15, Beta: 4,
	})
	require.NoError(t, err)
	link.Flow = 50
	require.NoError(t, net.AddDemand("1", "2", 50))

	var buf bytes.Buffer
	require.NoError(t, tntp.WriteFlows(&buf, net, costfn.BPR, "BPR", false))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Total Travel Time:\t504.6875", lines[0])
	assert.Equal(t, "Cost function used:\tBPR", lines[1])
	assert.Equal(t, "User equilibrium (UE) or system optimal (SO):\tUE", lines[2])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "init_node\tterm_node\tflow\ttravelTime", lines[4])
	assert.Equal(t, "1\t2\t50\t10.09375", lines[5])
}

// TestWriteFlows_SystemOptimalMarker verifies the SO regime marker.
func TestWriteFlows_SystemOptimalMarker(t *testing.T) {
	net := network.New()
	_, err := net.AddLink("1", "2", network.LinkParams{Capacity: 100, FreeFlowTime: 10})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tntp.WriteFlows(&buf, net, costfn.BPR, "BPR", true))
	assert.Contains(t, buf.String(), "(SO):\tSO")
}

// TestLoadRoundTrip verifies the end-to-end path: parse, assign, write.
func TestLoadRoundTrip(t *testing.T) {
	net, err := tntp.ReadNetwork(strings.NewReader(netFixture))
	require.NoError(t, err)
	require.NoError(t, tntp.ReadDemand(strings.NewReader(demandFixture), net))

	var buf bytes.Buffer
	require.NoError(t, tntp.WriteFlows(&buf, net, costfn.BPR, "BPR", false))
	assert.Contains(t, buf.String(), "init_node\tterm_node\tflow\ttravelTime")
	assert.Equal(t, 8, strings.Count(buf.String(), "\n"), "three link rows plus header block")
}
