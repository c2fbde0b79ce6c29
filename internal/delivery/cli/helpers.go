package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/DRSN-tech/pharmacrawl/internal/domain"
	"github.com/DRSN-tech/pharmacrawl/internal/usecase"
)

const summaryRowFmt = "%-7s %11d %9d %8d %7d %7d %9d %8s\n"

// printRunSummary печатает таблицу счётчиков прогона по категориям.
func printRunSummary(w io.Writer, stats *domain.RunStatistics) {
	fmt.Fprintf(w, "Run %s finished in %s\n", stats.RunID, stats.Duration().Round(time.Second))
	fmt.Fprintf(w, "%-7s %11s %9s %8s %7s %7s %9s %8s\n",
		"letter", "discovered", "inserted", "updated", "failed", "images", "img.fail", "aborted")

	for _, cs := range stats.Categories {
		fmt.Fprintf(w, summaryRowFmt, cs.Letter,
			cs.Discovered, cs.Inserted, cs.Updated, cs.Failed,
			cs.ImagesSaved, cs.ImagesFailed, abortedMark(cs.Aborted))
	}

	t := stats.Totals()

	fmt.Fprintf(w, summaryRowFmt, "total",
		t.Discovered, t.Inserted, t.Updated, t.Failed,
		t.ImagesSaved, t.ImagesFailed, "")
}

func abortedMark(aborted bool) string {
	if aborted {
		return "yes"
	}

	return ""
}

// printStatistics печатает сводку каталога и хранилища изображений.
func printStatistics(w io.Writer, res *usecase.StatisticsRes) {
	c := res.Catalog

	fmt.Fprintf(w, "Medicines:            %d\n", c.TotalMedicines)
	fmt.Fprintf(w, "  with images:        %d\n", c.MedicinesWithImages)
	fmt.Fprintf(w, "  with generic names: %d\n", c.MedicinesWithGenericNames)
	fmt.Fprintf(w, "  with listing price: %d\n", c.MedicinesWithListingPrices)
	fmt.Fprintf(w, "  with detail price:  %d\n", c.MedicinesWithDetailPrices)

	if !c.FirstRecord.IsZero() {
		fmt.Fprintf(w, "First record:         %s\n", c.FirstRecord.Format(time.RFC3339))
		fmt.Fprintf(w, "Last record:          %s\n", c.LastRecord.Format(time.RFC3339))
	}

	fmt.Fprintf(w, "Stored images:        %d (%.2f MB)\n", res.TotalImages, res.TotalSizeMB)
}
