package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/qualinet/review-planner/internal/store"
)

type reviewStatsCollector struct {
	store          store.Store
	totalReviews   *prometheus.Desc
	totalByStatus  *prometheus.Desc
	totalByStage   *prometheus.Desc
	totalOverdue   *prometheus.Desc
	totalFirms     *prometheus.Desc
	totalDocuments *prometheus.Desc
}

// NewReviewStatsCollector reports aggregate review counts straight from the
// store on every scrape.
func NewReviewStatsCollector(s store.Store) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_reviews_%s", reviewPlanner, name)
	}

	return &reviewStatsCollector{
		store: s,
		totalReviews: prometheus.NewDesc(
			fqName("total"),
			"Total number of reviews.",
			nil,
			prometheus.Labels{},
		),
		totalByStatus: prometheus.NewDesc(
			fqName("by_status_total"),
			"Total reviews by workflow status.",
			[]string{"status"},
			prometheus.Labels{},
		),
		totalByStage: prometheus.NewDesc(
			fqName("by_stage_total"),
			"Total reviews by stage.",
			[]string{"stage"},
			prometheus.Labels{},
		),
		totalOverdue: prometheus.NewDesc(
			fqName("overdue_total"),
			"Active reviews past their due date.",
			nil,
			prometheus.Labels{},
		),
		totalFirms: prometheus.NewDesc(
			fqName("member_firms_total"),
			"Distinct member firms with at least one review.",
			nil,
			prometheus.Labels{},
		),
		totalDocuments: prometheus.NewDesc(
			fqName("documents_total"),
			"Documents attached across all reviews.",
			nil,
			prometheus.Labels{},
		),
	}
}

func (c *reviewStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalReviews
	ch <- c.totalByStatus
	ch <- c.totalByStage
	ch <- c.totalOverdue
	ch <- c.totalFirms
	ch <- c.totalDocuments
}

// Collect implements Collector.
func (c *reviewStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.store.Statistics(context.Background())
	if err != nil {
		zap.S().Named("review_collector").Errorf("failed to collect review statistics: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.totalReviews, prometheus.GaugeValue, float64(stats.Total))
	ch <- prometheus.MustNewConstMetric(c.totalOverdue, prometheus.GaugeValue, float64(stats.Overdue))
	ch <- prometheus.MustNewConstMetric(c.totalFirms, prometheus.GaugeValue, float64(stats.TotalFirms))
	ch <- prometheus.MustNewConstMetric(c.totalDocuments, prometheus.GaugeValue, float64(stats.TotalDocuments))

	for status, total := range stats.TotalByStatus {
		ch <- prometheus.MustNewConstMetric(c.totalByStatus, prometheus.GaugeValue, float64(total), status)
	}

	for stage, total := range stats.TotalByStage {
		ch <- prometheus.MustNewConstMetric(c.totalByStage, prometheus.GaugeValue, float64(total), stage)
	}
}
