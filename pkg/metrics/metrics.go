package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "familyboard", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "familyboard", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	RecordsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "familyboard", Name: "records_created_total", Help: "Number of records created by collection."},
		[]string{"collection"},
	)
	RecordsDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "familyboard", Name: "records_deleted_total", Help: "Number of records deleted by collection."},
		[]string{"collection"},
	)
	StorageErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "familyboard", Name: "storage_errors_total", Help: "Number of failed store operations by collection and operation."},
		[]string{"collection", "op"},
	)
	KeepalivePings = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "familyboard", Name: "keepalive_pings_total", Help: "Number of keep-alive pings by job and result."},
		[]string{"job", "result"},
	)
	Backups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "familyboard", Name: "backups_total", Help: "Number of backup snapshots by result."},
		[]string{"result"},
	)
)

// RegisterCollectors registers the service counters plus the Go runtime and
// process collectors. Each registry may only be passed once.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(RecordsCreated)
	reg.MustRegister(RecordsDeleted)
	reg.MustRegister(StorageErrors)
	reg.MustRegister(KeepalivePings)
	reg.MustRegister(Backups)
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}
