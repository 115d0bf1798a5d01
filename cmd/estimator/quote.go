package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"carpet-estimator/internal/estimator/detection"
	"carpet-estimator/internal/estimator/engine"
	"carpet-estimator/internal/estimator/export"
	"carpet-estimator/internal/estimator/models"
	"carpet-estimator/internal/estimator/svgplan"
)

var (
	quotePDF      string
	quoteXLSX     string
	quoteSVG      string
	quoteCustomer string
)

var quoteCmd = &cobra.Command{
	Use:   "quote <analysis.json|plan.svg>",
	Short: "Print the carpet quote for an analysis result or SVG floor plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		set, err := loadRoomSet(args[0], data, engineSettings())
		if err != nil {
			return err
		}

		printQuote(cmd.OutOrStdout(), set, cfg.RollWidth)
		return writeExports(export.Quote{
			Customer:  models.Customer{Name: quoteCustomer},
			Rooms:     set,
			Created:   time.Now(),
			RollWidth: cfg.RollWidth,
		}, engineSettings().Scale)
	},
}

func init() {
	quoteCmd.Flags().StringVar(&quotePDF, "pdf", "", "Write the quote as PDF to this path")
	quoteCmd.Flags().StringVar(&quoteXLSX, "xlsx", "", "Write the quote as XLSX to this path")
	quoteCmd.Flags().StringVar(&quoteSVG, "svg", "", "Write the room drawing as SVG to this path")
	quoteCmd.Flags().StringVar(&quoteCustomer, "customer", "", "Customer name printed on exports")
	rootCmd.AddCommand(quoteCmd)
}

// loadRoomSet reads either analyzer output or an SVG plan and returns the
// normalized room set.
func loadRoomSet(name string, data []byte, settings engine.Settings) (models.RoomSet, error) {
	var set models.RoomSet

	if strings.EqualFold(filepath.Ext(name), ".svg") || bytes.HasPrefix(bytes.TrimSpace(data), []byte("<")) {
		plan, err := svgplan.ParsePlan(bytes.NewReader(data))
		if err != nil {
			return set, err
		}
		set = plan.RoomSet(settings)
	} else {
		parsed, err := detection.ParseAnalysis(string(data))
		if err != nil {
			return set, err
		}
		set = parsed
	}

	w := engine.New(settings)
	w.Load(set)
	return w.RoomSet(), nil
}

func printQuote(out io.Writer, set models.RoomSet, rollWidth float64) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Room\tCategory\tL (m)\tW (m)\tArea\tCarpet\tCarpet Area\tLinear m\t")
	for i, r := range set.Rooms {
		carpet := "no"
		if r.Carpetable {
			carpet = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\t%s\t%.2f\t%.2f\t\n",
			r.DisplayName(i), r.Category.Label(), r.Dimensions.Length, r.Dimensions.Width,
			r.Area, carpet, r.CarpetableArea, r.LinearMetres)
	}
	tw.Flush()

	fmt.Fprintf(out, "\nTotal carpet area: %.2f m2\n", set.TotalCarpetableArea)
	fmt.Fprintf(out, "Total linear metres (%.2fm roll): %.2f\n", rollWidth, set.TotalLinearMetres)
	for _, w := range set.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
}

func writeExports(q export.Quote, scale float64) error {
	if quotePDF != "" {
		data, err := export.BuildQuotePDF(q)
		if err != nil {
			return err
		}
		if err := os.WriteFile(quotePDF, data, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
	}
	if quoteXLSX != "" {
		data, err := export.BuildQuoteXLSX(q)
		if err != nil {
			return err
		}
		if err := os.WriteFile(quoteXLSX, data, 0o644); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
	}
	if quoteSVG != "" {
		svg := export.NewRenderer(scale).Render(q.Rooms)
		if err := os.WriteFile(quoteSVG, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}
	return nil
}
