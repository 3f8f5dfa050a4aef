// Package pipeline runs the complete plot flow: normalize the configured
// input, build the versioned dataset payload, upload it, and compose the
// visualization URL.
//
// The Runner centralizes this logic so the CLI and embedding programs behave
// identically. A dry run stops after the build stage and returns the payload
// that would have been uploaded.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/graphport/graphport/pkg/buildinfo"
	"github.com/graphport/graphport/pkg/client"
	"github.com/graphport/graphport/pkg/config"
	"github.com/graphport/graphport/pkg/dataset"
	"github.com/graphport/graphport/pkg/graphin"
	"github.com/graphport/graphport/pkg/plot"
)

// splashDelay is how long the viewer shows its splash screen before loading
// the dataset.
const splashDelay = 15 * time.Second

// Runner executes plots against one configured upload service.
//
// The Runner is stateless apart from its client and logger; multiple
// goroutines can share one Runner.
type Runner struct {
	Config config.Config
	Client *client.Client
	Logger *log.Logger

	// usertag identifies this runner instance in upload metadata.
	usertag string
}

// NewRunner creates a runner. A nil client is built from the config; a nil
// logger falls back to log.Default().
func NewRunner(cfg config.Config, c *client.Client, logger *log.Logger) *Runner {
	if c == nil {
		c = client.New(cfg, nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Config:  cfg,
		Client:  c,
		Logger:  logger,
		usertag: uuid.NewString(),
	}
}

// Options carries per-plot overrides.
type Options struct {
	// Name overrides the plotter's dataset name. When both are empty a
	// random "Untitled" name is generated.
	Name string

	// Description overrides the plotter's description.
	Description string

	// SkipUpload stops after building the payload and returns it for
	// inspection instead of uploading.
	SkipUpload bool
}

// Result is the outcome of a plot.
type Result struct {
	// Dataset is the built payload. For uploaded plots the Arrow records
	// have been released by the time the result returns.
	Dataset *dataset.Dataset

	// DatasetID is the server-side dataset identifier. Empty on dry runs.
	DatasetID string

	// URL is the browser URL of the visualization. Empty on dry runs.
	URL string

	// OpenBrowser reflects the plotter's render setting.
	OpenBrowser bool

	Warnings []string
}

// Plot builds and uploads the plotter's configured graph.
func (r *Runner) Plot(ctx context.Context, p *plot.Plotter, opts Options) (*Result, error) {
	spec := p.Spec()
	spec.Name = r.datasetName(opts.Name, spec.Name)
	if opts.Description != "" {
		spec.Description = opts.Description
	}

	format, err := dataset.FormatForAPIVersion(r.Config.APIVersion)
	if err != nil {
		return nil, err
	}

	pair, err := graphin.Normalize(p.EdgesInput(), p.NodesInput(), spec.Source, spec.Destination, spec.Node)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ds, err := dataset.Build(spec, pair, format)
	if err != nil {
		return nil, err
	}
	for _, w := range ds.Warnings {
		r.Logger.Warn(w)
	}
	r.Logger.Info("built dataset",
		"name", spec.Name,
		"format", string(format),
		"duration", time.Since(start).Round(time.Millisecond))

	result := &Result{
		Dataset:     ds,
		OpenBrowser: spec.Render,
		Warnings:    ds.Warnings,
	}
	if opts.SkipUpload {
		return result, nil
	}

	info, err := r.upload(ctx, ds)
	if err != nil {
		return nil, err
	}
	result.DatasetID = info.Name
	result.URL = r.vizURL(info, spec.URLParams)

	r.Logger.Info("uploaded dataset", "id", info.Name, "url", result.URL)
	return result, nil
}

func (r *Runner) upload(ctx context.Context, ds *dataset.Dataset) (client.UploadInfo, error) {
	switch ds.Format {
	case dataset.FormatRecords:
		return r.Client.ETL(ctx, 1, ds.Records)

	case dataset.FormatVGraph:
		return r.Client.ETL(ctx, 2, ds.VGraph)

	case dataset.FormatArrow:
		if _, err := r.Client.Refresh(ctx); err != nil {
			return client.UploadInfo{}, err
		}
		arrow := ds.Arrow
		defer arrow.Release()
		arrow.Metadata["usertag"] = r.usertag
		arrow.Metadata["key"] = r.Config.Key
		arrow.Metadata["agent"] = buildinfo.Agent
		arrow.Metadata["apiversion"] = "3"
		arrow.Metadata["agentversion"] = buildinfo.Version

		id, err := arrow.Upload(ctx, r.Client)
		if err != nil {
			return client.UploadInfo{}, err
		}
		return client.UploadInfo{
			Name:     id,
			Type:     "arrow",
			Viztoken: uuid.NewString(),
		}, nil

	default:
		return client.UploadInfo{}, fmt.Errorf("unhandled dataset format %q", ds.Format)
	}
}

// datasetName resolves the effective dataset name: explicit override, then
// the plotter's name, then a random "Untitled" name. The configured prefix
// applies in every case.
func (r *Runner) datasetName(override, bound string) string {
	name := override
	if name == "" {
		name = bound
	}
	if name == "" {
		name = "Untitled " + uuid.NewString()[:8]
	}
	if r.Config.DatasetPrefix != "" {
		name = r.Config.DatasetPrefix + "/" + name
	}
	return name
}

// vizURL composes the browser URL for an uploaded dataset.
func (r *Runner) vizURL(info client.UploadInfo, params map[string]string) string {
	splash := time.Now().Add(splashDelay).Unix()
	base := fmt.Sprintf("%s/graph/graph.html?dataset=%s&type=%s&viztoken=%s&usertag=%s&splashAfter=%d",
		r.Config.ViewBaseURL(),
		url.QueryEscape(info.Name),
		url.QueryEscape(info.Type),
		url.QueryEscape(info.Viztoken),
		url.QueryEscape(r.usertag),
		splash)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var extra strings.Builder
	for _, k := range keys {
		extra.WriteString("&")
		extra.WriteString(url.QueryEscape(k))
		extra.WriteString("=")
		extra.WriteString(url.QueryEscape(params[k]))
	}
	return base + extra.String()
}
