// Package server exposes the simulation engine over a JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gc-tools/chromsim/internal/config"
	"github.com/gc-tools/chromsim/internal/metrics"
	"github.com/gc-tools/chromsim/internal/optimizer"
	"github.com/gc-tools/chromsim/internal/simulate"
	"github.com/gc-tools/chromsim/pkg/constants"
	"github.com/gc-tools/chromsim/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
}

type simulateOptions struct {
	Optimize         bool    `json:"optimize"`
	TargetResolution float64 `json:"targetResolution"`
}

// NewHandler constructs the HTTP handler that serves the simulation API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxRequestSize: maxRequestSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Simulation API endpoint
	mux.HandleFunc("/api/simulate", h.handleSimulate)

	// Config serialization endpoint for client downloads
	mux.HandleFunc("/api/export", h.handleConfigExport)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Prometheus metrics
	mux.Handle("/metrics", metrics.Handler())

	return mux
}

type simulateResponse struct {
	Mode          string              `json:"mode"`
	Peaks         []peakRow           `json:"peaks"`
	TimeAxis      []float64           `json:"timeAxis"`
	IonicSignal   []float64           `json:"ionicSignal"`
	NeutralSignal []float64           `json:"neutralSignal"`
	CSV           string              `json:"csv"`
	Warnings      []string            `json:"warnings,omitempty"`
	Optimization  *optimizationResult `json:"optimization,omitempty"`
	Duration      string              `json:"duration"`
}

type peakRow struct {
	Compound         string   `json:"compound"`
	RetentionTime    float64  `json:"retentionTime"`
	Width            float64  `json:"width"`
	IonicIntensity   float64  `json:"ionicIntensity"`
	NeutralIntensity float64  `json:"neutralIntensity"`
	Resolution       *float64 `json:"resolution,omitempty"`
}

type optimizationResult struct {
	TargetResolution   float64  `json:"targetResolution"`
	OriginalRate       float64  `json:"originalRate"`
	Rate               float64  `json:"rate"`
	AchievedResolution float64  `json:"achievedResolution"`
	Iterations         int      `json:"iterations"`
	Converged          bool     `json:"converged"`
	Notes              []string `json:"notes,omitempty"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxRequestSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), "server.handleSimulate")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleSimulate")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondError(w, http.StatusBadRequest, "invalid config payload: expected object", "server.handleSimulate")
			return
		}
		configPayload = cfgMap
	}

	options := simulateOptions{}
	if rawOptions, ok := payload["options"]; ok {
		optsBytes, err := json.Marshal(rawOptions)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid options payload", "server.handleSimulate")
			return
		}
		if err := json.Unmarshal(optsBytes, &options); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid options payload: %v", err), "server.handleSimulate")
			return
		}
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleSimulate")
		return
	}

	h.runSimulation(w, configBytes, start, "server.handleSimulate", options)
}

func (h *handler) runSimulation(w http.ResponseWriter, configBytes []byte, start time.Time, op string, opts simulateOptions) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	compounds, err := cfg.CompoundList()
	if err != nil {
		h.simulateFailed(cfg)
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	var optimization *optimizationResult
	if opts.Optimize {
		runner, err := optimizer.NewRunner(h.logger, cfg)
		if err != nil {
			h.simulateFailed(cfg)
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to initialize optimizer: %v", err), op)
			return
		}
		result, err := runner.Run(opts.TargetResolution)
		if err != nil {
			h.simulateFailed(cfg)
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("optimizer execution failed: %v", err), op)
			return
		}
		metrics.OptimizerIterations.Observe(float64(result.Iterations))
		optimization = &optimizationResult{
			TargetResolution:   result.TargetResolution,
			OriginalRate:       result.OriginalRate,
			Rate:               result.Rate,
			AchievedResolution: result.AchievedResolution,
			Iterations:         result.Iterations,
			Converged:          result.Converged,
			Notes:              append([]string(nil), result.Notes...),
		}
	}

	inst, err := cfg.BuildInstrument()
	if err != nil {
		h.simulateFailed(cfg)
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	run, err := simulate.Simulate(h.logger, compounds, inst, cfg.TimeAxis())
	if err != nil {
		metrics.SimulationTotal.WithLabelValues(string(inst.Mode()), "error").Inc()
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	metrics.SimulationDuration.WithLabelValues(string(run.Mode)).Observe(elapsed.Seconds())
	metrics.SimulationTotal.WithLabelValues(string(run.Mode), "ok").Inc()
	metrics.PeaksPerRun.Observe(float64(len(run.Peaks)))

	response := simulateResponse{
		Mode:          string(run.Mode),
		Peaks:         buildPeakRows(run.Peaks),
		TimeAxis:      run.TimeAxis,
		IonicSignal:   run.Trace.Ionic,
		NeutralSignal: run.Trace.Neutral,
		CSV:           output.CsvString(run),
		Warnings:      warnings,
		Optimization:  optimization,
		Duration:      elapsed.String(),
	}

	h.logger.Info("simulation computed",
		zap.String("op", op),
		zap.String("mode", response.Mode),
		zap.Int("peaks", len(response.Peaks)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) simulateFailed(cfg *config.Configuration) {
	mode, err := cfg.SimulationMode()
	if err != nil {
		mode = "unknown"
	}
	metrics.SimulationTotal.WithLabelValues(string(mode), "error").Inc()
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleConfigExport")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// marshalOrderedConfigYAML keeps the mode/compounds/instrument blocks at the
// top of exported documents so downloads read like hand-written configs.
func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"mode", "compounds", "instrument", "axis"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func buildPeakRows(peaks []simulate.Peak) []peakRow {
	rows := make([]peakRow, 0, len(peaks))
	for _, peak := range peaks {
		var resolution *float64
		if peak.Resolution != nil {
			v := *peak.Resolution
			resolution = &v
		}
		rows = append(rows, peakRow{
			Compound:         peak.Compound,
			RetentionTime:    peak.RetentionTime,
			Width:            peak.Width,
			IonicIntensity:   peak.IonicIntensity,
			NeutralIntensity: peak.NeutralIntensity,
			Resolution:       resolution,
		})
	}
	return rows
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("simulation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
