package tntp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/wardrop/assign"
	"github.com/katalvlaran/wardrop/costfn"
	"github.com/katalvlaran/wardrop/network"
)

var (
	// ErrNoHeader is returned when a table has no header row.
	ErrNoHeader = errors.New("tntp: no header row found")
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("tntp: missing required column")
	// ErrBadRow is returned when a data row cannot be parsed.
	ErrBadRow = errors.New("tntp: malformed data row")
)

// Required link-table columns, by header name.
var netColumns = []string{
	"init_node", "term_node", "capacity", "length",
	"free_flow_time", "b", "power", "speed", "toll", "link_type",
}

// Required trip-table columns, by header name.
var demandColumns = []string{"init_node", "term_node", "demand"}

// ReadNetwork parses a TNTP link table into a fresh Network.
func ReadNetwork(r io.Reader) (*network.Network, error) {
	net := network.New()

	err := readTable(r, netColumns, func(lineNo int, cols map[string]string) error {
		from, ferr := nodeID(cols["init_node"])
		if ferr != nil {
			return fmt.Errorf("%w: line %d: init_node: %v", ErrBadRow, lineNo, ferr)
		}
		to, terr := nodeID(cols["term_node"])
		if terr != nil {
			return fmt.Errorf("%w: line %d: term_node: %v", ErrBadRow, lineNo, terr)
		}

		nums := make(map[string]float64, len(netColumns)-2)
		for _, name := range netColumns[2:] {
			if name == "link_type" {
				continue
			}
			v, perr := strconv.ParseFloat(cols[name], 64)
			if perr != nil {
				return fmt.Errorf("%w: line %d: %s: %v", ErrBadRow, lineNo, name, perr)
			}
			nums[name] = v
		}

		_, aerr := net.AddLink(from, to, network.LinkParams{
			Capacity:     nums["capacity"],
			Length:       nums["length"],
			FreeFlowTime: nums["free_flow_time"],
			Alpha:        nums["b"],
			Beta:         nums["power"],
			SpeedLimit:   nums["speed"],
			Toll:         nums["toll"],
			LinkType:     cols["link_type"],
		})
		if aerr != nil {
			return fmt.Errorf("tntp: line %d: %w", lineNo, aerr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return net, nil
}

// ReadDemand parses a TNTP trip table into net. Zero-volume and
// intra-zonal records are skipped inside AddDemand.
func ReadDemand(r io.Reader, net *network.Network) error {
	return readTable(r, demandColumns, func(lineNo int, cols map[string]string) error {
		from, ferr := nodeID(cols["init_node"])
		if ferr != nil {
			return fmt.Errorf("%w: line %d: init_node: %v", ErrBadRow, lineNo, ferr)
		}
		to, terr := nodeID(cols["term_node"])
		if terr != nil {
			return fmt.Errorf("%w: line %d: term_node: %v", ErrBadRow, lineNo, terr)
		}
		volume, verr := strconv.ParseFloat(cols["demand"], 64)
		if verr != nil {
			return fmt.Errorf("%w: line %d: demand: %v", ErrBadRow, lineNo, verr)
		}

		if aerr := net.AddDemand(from, to, volume); aerr != nil {
			return fmt.Errorf("tntp: line %d: %w", lineNo, aerr)
		}

		return nil
	})
}

// Load reads a network and its demand from disk. An empty demandPath is
// derived from netPath the dataset way: the last underscore-separated
// segment is replaced with "trips.tntp".
func Load(netPath, demandPath string) (*network.Network, error) {
	if demandPath == "" {
		demandPath = DefaultDemandPath(netPath)
	}

	nf, err := os.Open(netPath)
	if err != nil {
		return nil, fmt.Errorf("tntp: open network file: %w", err)
	}
	defer nf.Close()

	net, err := ReadNetwork(nf)
	if err != nil {
		return nil, err
	}

	df, err := os.Open(demandPath)
	if err != nil {
		return nil, fmt.Errorf("tntp: open demand file: %w", err)
	}
	defer df.Close()

	if err = ReadDemand(df, net); err != nil {
		return nil, err
	}

	return net, nil
}

// DefaultDemandPath derives the trip-table path from a network path:
// "City_net.tntp" becomes "City_trips.tntp".
func DefaultDemandPath(netPath string) string {
	idx := strings.LastIndex(netPath, "_")
	if idx < 0 {
		return "trips.tntp"
	}

	return netPath[:idx] + "_trips.tntp"
}

// WriteFlows writes an assignment result file: reported total travel
// time (always at user-equilibrium cost), the cost-function name, a
// UE/SO marker, then one tab-separated row per link with its flow and
// travel time evaluated at maximum capacity.
func WriteFlows(w io.Writer, net *network.Network, cost costfn.Func, costName string, systemOptimal bool) error {
	bw := bufio.NewWriter(w)

	tstt := assign.ReportedTSTT(net, cost)
	regime := "UE"
	if systemOptimal {
		regime = "SO"
	}

	fmt.Fprintf(bw, "Total Travel Time:\t%s\n", formatFloat(tstt))
	fmt.Fprintf(bw, "Cost function used:\t%s\n", costName)
	fmt.Fprintf(bw, "User equilibrium (UE) or system optimal (SO):\t%s\n\n", regime)
	fmt.Fprintln(bw, "init_node\tterm_node\tflow\ttravelTime")

	for _, key := range net.LinkKeys() {
		link, err := net.Link(key)
		if err != nil {
			return fmt.Errorf("tntp: write flows: %w", err)
		}
		travelTime := cost(false,
			link.FreeFlowTime, link.Alpha, link.Flow, link.MaxCapacity,
			link.Beta, link.Length, link.SpeedLimit)
		fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n",
			link.From, link.To, formatFloat(link.Flow), formatFloat(travelTime))
	}

	return bw.Flush()
}

// readTable scans a TNTP table, skipping metadata (<...>), comments
// (~...) and blank lines, locating the header row and dispatching each
// data row to fn as a column-name → field map.
func readTable(r io.Reader, required []string, fn func(lineNo int, cols map[string]string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var index map[string]int
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(scanner.Text()), ";"))
		if line == "" || strings.HasPrefix(line, "<") {
			continue
		}
		// Dataset files often prefix the header row itself with "~".
		if strings.HasPrefix(line, "~") {
			if index != nil || !strings.Contains(line, required[0]) {
				continue
			}
			line = strings.TrimSpace(strings.TrimPrefix(line, "~"))
		}

		fields := strings.Fields(line)
		if index == nil {
			var err error
			if index, err = headerIndex(fields, required); err != nil {
				return err
			}
			continue
		}

		cols := make(map[string]string, len(index))
		for name, pos := range index {
			if pos >= len(fields) {
				return fmt.Errorf("%w: line %d: %d fields, want at least %d",
					ErrBadRow, lineNo, len(fields), pos+1)
			}
			cols[name] = fields[pos]
		}
		if err := fn(lineNo, cols); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("tntp: read: %w", err)
	}
	if index == nil {
		return ErrNoHeader
	}

	return nil
}

func headerIndex(fields, required []string) (map[string]int, error) {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[strings.ToLower(f)] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	// Only required columns survive; extras in the file are ignored.
	for name := range index {
		if !contains(required, name) {
			delete(index, name)
		}
	}

	return index, nil
}

// nodeID normalises a node field the dataset way: integral floats like
// "1.0" collapse to "1", anything else is kept verbatim.
func nodeID(field string) (string, error) {
	if field == "" {
		return "", errors.New("empty node id")
	}
	if v, err := strconv.ParseFloat(field, 64); err == nil && v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10), nil
	}

	return field, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}

	return false
}
