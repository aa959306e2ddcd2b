package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/wardrop/assign"
	"github.com/katalvlaran/wardrop/costfn"
	"github.com/katalvlaran/wardrop/network"
)

// LinkSpec describes one directed link of the request network.
type LinkSpec struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	Capacity     float64 `json:"capacity"`
	Length       float64 `json:"length"`
	FreeFlowTime float64 `json:"free_flow_time"`
	Alpha        float64 `json:"alpha"`
	Beta         float64 `json:"beta"`
	SpeedLimit   float64 `json:"speed_limit"`
	Toll         float64 `json:"toll"`
	LinkType     string  `json:"link_type"`
}

// DemandSpec describes one origin-destination volume.
type DemandSpec struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Volume float64 `json:"volume"`
}

// SolveOptions tunes the solver; zero values fall back to the
// assignment defaults.
type SolveOptions struct {
	Algorithm      string  `json:"algorithm"`
	CostFunction   string  `json:"cost_function"`
	Accuracy       float64 `json:"accuracy"`
	MaxIterations  int     `json:"max_iterations"`
	MaxRunTimeSecs float64 `json:"max_run_time_secs"`
	StepSize       float64 `json:"step_size"`
	SystemOptimal  bool    `json:"system_optimal"`
}

// AssignRequest is the POST /api/v1/assign body.
type AssignRequest struct {
	Links   []LinkSpec   `json:"links"`
	Demands []DemandSpec `json:"demands"`
	Options SolveOptions `json:"options"`
}

// LinkResult carries one equilibrated link.
type LinkResult struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Flow float64 `json:"flow"`
	Cost float64 `json:"cost"`
}

// AssignResponse is the solve result.
type AssignResponse struct {
	TSTT        float64      `json:"tstt"`
	Gap         float64      `json:"gap"`
	Iterations  int          `json:"iterations"`
	Converged   bool         `json:"converged"`
	ElapsedSecs float64      `json:"elapsed_secs"`
	Links       []LinkResult `json:"links"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type assignHandler struct {
	logger *zap.Logger
}

func newAssignHandler(logger *zap.Logger) *assignHandler {
	return &assignHandler{logger: logger}
}

func (h *assignHandler) assign(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	net, err := buildNetwork(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts, err := buildOptions(req.Options, h.logger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := assign.Run(net, opts...)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if isConfigError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, buildResponse(net, res))
}

func buildNetwork(req AssignRequest) (*network.Network, error) {
	net := network.New()
	for _, l := range req.Links {
		if _, err := net.AddLink(l.From, l.To, network.LinkParams{
			Capacity:     l.Capacity,
			Length:       l.Length,
			FreeFlowTime: l.FreeFlowTime,
			Alpha:        l.Alpha,
			Beta:         l.Beta,
			SpeedLimit:   l.SpeedLimit,
			Toll:         l.Toll,
			LinkType:     l.LinkType,
		}); err != nil {
			return nil, err
		}
	}
	for _, d := range req.Demands {
		if err := net.AddDemand(d.From, d.To, d.Volume); err != nil {
			return nil, err
		}
	}

	return net, nil
}

func buildOptions(so SolveOptions, logger *zap.Logger) ([]assign.Option, error) {
	opts := []assign.Option{assign.WithLogger(logger)}

	if so.Algorithm != "" {
		algo, err := assign.ParseAlgorithm(so.Algorithm)
		if err != nil {
			return nil, err
		}
		opts = append(opts, assign.WithAlgorithm(algo))
	}
	if so.CostFunction != "" {
		cost, err := costfn.ByName(so.CostFunction)
		if err != nil {
			return nil, err
		}
		opts = append(opts, assign.WithCostFunction(cost))
	}
	if so.Accuracy != 0 {
		opts = append(opts, assign.WithAccuracy(so.Accuracy))
	}
	if so.MaxIterations != 0 {
		opts = append(opts, assign.WithMaxIterations(so.MaxIterations))
	}
	if so.MaxRunTimeSecs != 0 {
		opts = append(opts, assign.WithMaxRunTime(time.Duration(so.MaxRunTimeSecs*float64(time.Second))))
	}
	if so.StepSize != 0 {
		opts = append(opts, assign.WithStepSize(so.StepSize))
	}
	if so.SystemOptimal {
		opts = append(opts, assign.WithSystemOptimal())
	}

	return opts, nil
}

func buildResponse(net *network.Network, res assign.Result) AssignResponse {
	keys := net.LinkKeys()
	links := make([]LinkResult, 0, len(keys))
	for _, key := range keys {
		link, err := net.Link(key)
		if err != nil {
			continue
		}
		links = append(links, LinkResult{
			From: link.From,
			To:   link.To,
			Flow: link.Flow,
			Cost: link.Cost,
		})
	}

	return AssignResponse{
		TSTT:        res.TSTT,
		Gap:         res.Gap,
		Iterations:  res.Iterations,
		Converged:   res.Converged,
		ElapsedSecs: res.Elapsed.Seconds(),
		Links:       links,
	}
}

// isConfigError maps solver configuration sentinels to 400.
func isConfigError(err error) bool {
	for _, sentinel := range []error{
		assign.ErrNilNetwork,
		assign.ErrNilCostFunc,
		assign.ErrUnknownAlgorithm,
		assign.ErrBadAccuracy,
		assign.ErrBadMaxIterations,
		assign.ErrBadStepSize,
		assign.ErrNoDemand,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
