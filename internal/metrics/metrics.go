// Package metrics регистрирует счётчики приложения в реестре prometheus по умолчанию.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DonationsTotal количество принятых пожертвований по категории кампании.
	DonationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "community_kitchen",
		Name:      "donations_total",
		Help:      "Number of recorded donations.",
	}, []string{"category"})

	// DonatedAmount сумма пожертвований без комиссии.
	DonatedAmount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "community_kitchen",
		Name:      "donated_amount_total",
		Help:      "Sum of donated amounts excluding processing fees.",
	}, []string{"category"})

	// CampaignsCreated количество созданных кампаний по категории.
	CampaignsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "community_kitchen",
		Name:      "campaigns_created_total",
		Help:      "Number of created campaigns.",
	}, []string{"category"})

	// ImageUploadFailures количество изображений, которые не удалось сохранить.
	ImageUploadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "community_kitchen",
		Name:      "image_upload_failures_total",
		Help:      "Number of campaign images skipped because of upload errors.",
	})

	// CacheRequests обращения к кешу по результату: hit, miss, error.
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "community_kitchen",
		Name:      "cache_requests_total",
		Help:      "Cache lookups by result.",
	}, []string{"result"})
)

// ObserveDonation учитывает принятое пожертвование.
func ObserveDonation(category string, amount float64) {
	DonationsTotal.WithLabelValues(category).Inc()
	DonatedAmount.WithLabelValues(category).Add(amount)
}

// ObserveCache учитывает обращение к кешу.
func ObserveCache(found bool, err error) {
	switch {
	case err != nil:
		CacheRequests.WithLabelValues("error").Inc()
	case found:
		CacheRequests.WithLabelValues("hit").Inc()
	default:
		CacheRequests.WithLabelValues("miss").Inc()
	}
}
