package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	gv "github.com/awalterschulze/gographviz"
	"github.com/spf13/cobra"

	"github.com/graphport/graphport/pkg/client"
	"github.com/graphport/graphport/pkg/dataset"
	"github.com/graphport/graphport/pkg/pipeline"
	"github.com/graphport/graphport/pkg/plot"
	"github.com/graphport/graphport/pkg/session"
	"github.com/graphport/graphport/pkg/table"
)

// plotFlags collects the plot command's options.
type plotFlags struct {
	edges       string
	nodes       string
	dot         string
	source      string
	destination string
	node        string

	name        string
	description string

	pointColor string
	pointSize  string
	pointTitle string
	edgeColor  string
	edgeWeight string

	dryRun bool
	out    string
	noOpen bool
}

func newPlotCmd() *cobra.Command {
	var f plotFlags

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Build and upload a dataset, returning the visualization URL",
		Long: `Plot builds a dataset from CSV or DOT input, uploads it to the configured
service, and prints the browser URL of the interactive visualization.

With --dry-run the payload that would have been uploaded is written out
instead of uploaded.`,
		Example: `  graphport plot --edges edges.csv -s src -d dst
  graphport plot --edges edges.csv --nodes nodes.csv -s src -d dst -n id --point-color type
  graphport plot --dot graph.dot -s src -d dst --dry-run --out payload.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.edges, "edges", "", "CSV file with the edge list")
	cmd.Flags().StringVar(&f.nodes, "nodes", "", "CSV file with the node table")
	cmd.Flags().StringVar(&f.dot, "dot", "", "DOT file with an attributed graph (alternative to --edges)")
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "edge source column")
	cmd.Flags().StringVarP(&f.destination, "destination", "d", "", "edge destination column")
	cmd.Flags().StringVarP(&f.node, "node", "n", "", "node identity column")
	cmd.Flags().StringVar(&f.name, "name", "", "dataset name (default: a random Untitled name)")
	cmd.Flags().StringVar(&f.description, "description", "", "dataset description")
	cmd.Flags().StringVar(&f.pointColor, "point-color", "", "column driving node color")
	cmd.Flags().StringVar(&f.pointSize, "point-size", "", "column driving node size")
	cmd.Flags().StringVar(&f.pointTitle, "point-title", "", "column driving node titles")
	cmd.Flags().StringVar(&f.edgeColor, "edge-color", "", "column driving edge color")
	cmd.Flags().StringVar(&f.edgeWeight, "edge-weight", "", "column driving edge weight")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "build the payload without uploading")
	cmd.Flags().StringVar(&f.out, "out", "", "write the dry-run payload to this path")
	cmd.Flags().BoolVar(&f.noOpen, "no-open", false, "do not open the visualization in a browser")

	return cmd
}

func runPlot(cmd *cobra.Command, f plotFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	p, err := buildPlotter(f)
	if err != nil {
		return err
	}

	store, err := session.NewFileStore("")
	if err != nil {
		return err
	}
	defer store.Close()

	runner := pipeline.NewRunner(cfg, client.New(cfg, store), logger)

	prog := newProgress(logger)
	spin := newSpinnerWithContext(ctx, "plotting graph...")
	spin.Start()
	res, err := runner.Plot(ctx, p, pipeline.Options{
		Name:        f.name,
		Description: f.description,
		SkipUpload:  f.dryRun,
	})
	if err != nil {
		spin.StopWithError(err.Error())
		return err
	}
	spin.Stop()
	prog.done("plot complete")

	for _, w := range res.Warnings {
		printWarning("%s", w)
	}

	if f.dryRun {
		return writeDryRun(res.Dataset, f.out)
	}

	printSuccess("uploaded dataset %s", res.DatasetID)
	printLink(res.URL)

	if res.OpenBrowser && !f.noOpen {
		if err := openBrowser(res.URL); err != nil {
			logger.Debug("open browser", "err", err)
		}
	}
	return nil
}

// buildPlotter assembles the immutable plotting configuration from flags.
func buildPlotter(f plotFlags) (*plot.Plotter, error) {
	p := plot.New().Bind(plot.Bindings{
		Source:      f.source,
		Destination: f.destination,
		Node:        f.node,
		PointColor:  f.pointColor,
		PointSize:   f.pointSize,
		PointTitle:  f.pointTitle,
		EdgeColor:   f.edgeColor,
		EdgeWeight:  f.edgeWeight,
	})

	switch {
	case f.dot != "":
		data, err := os.ReadFile(f.dot)
		if err != nil {
			return nil, fmt.Errorf("read dot file: %w", err)
		}
		g, err := gv.Read(data)
		if err != nil {
			return nil, fmt.Errorf("parse dot file: %w", err)
		}
		p = p.Graph(g)

	case f.edges != "":
		edges, err := readCSVFile(f.edges)
		if err != nil {
			return nil, err
		}
		p = p.Edges(edges, "", "")
		if f.nodes != "" {
			nodes, err := readCSVFile(f.nodes)
			if err != nil {
				return nil, err
			}
			p = p.Nodes(nodes, "")
		}

	default:
		return nil, fmt.Errorf("either --edges or --dot is required")
	}

	return p, nil
}

func readCSVFile(path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	t, err := table.ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// writeDryRun serializes the built payload. Record and legacy payloads are
// JSON; the columnar payload is written as a pair of Arrow IPC files next to
// the output path.
func writeDryRun(ds *dataset.Dataset, out string) error {
	switch ds.Format {
	case dataset.FormatRecords, dataset.FormatVGraph:
		var payload any = ds.Records
		if ds.Format == dataset.FormatVGraph {
			payload = ds.VGraph
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		if out == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		printSuccess("wrote payload to %s", out)
		return nil

	case dataset.FormatArrow:
		arrow := ds.Arrow
		defer arrow.Release()
		printInfo("arrow payload %q", arrow.Name)
		printStats(int(arrow.Nodes.NumRows()), int(arrow.Edges.NumRows()))
		if out == "" {
			return nil
		}
		base := out
		if ext := filepath.Ext(base); ext != "" {
			base = base[:len(base)-len(ext)]
		}
		edgeIPC, err := table.ArrowIPC(arrow.Edges)
		if err != nil {
			return err
		}
		nodeIPC, err := table.ArrowIPC(arrow.Nodes)
		if err != nil {
			return err
		}
		for _, part := range []struct {
			path string
			data []byte
		}{
			{base + ".edges.arrow", edgeIPC},
			{base + ".nodes.arrow", nodeIPC},
		} {
			if err := os.WriteFile(part.path, part.data, 0o644); err != nil {
				return err
			}
			printDetail("wrote %s", part.path)
		}
		return nil
	}
	return fmt.Errorf("unhandled dataset format %q", ds.Format)
}

// openBrowser opens url with the platform's default browser.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
