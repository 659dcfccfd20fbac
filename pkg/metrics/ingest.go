package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ingestion counters, partitioned the same way the HTTP metrics are.
var (
	UploadCnt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: "ingest",
			Name:      "uploads_total",
			Help:      "Uploads processed, partitioned by kind and outcome.",
		},
		[]string{"kind", "status"},
	)

	UploadRowCnt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: "ingest",
			Name:      "upload_rows_total",
			Help:      "Rows seen by the ingestion pipeline, partitioned by kind and result.",
		},
		[]string{"kind", "result"},
	)

	UnmappedCnt = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: "ingest",
			Name:      "unmapped_rc_total",
			Help:      "Response codes parked for manual mapping.",
		},
	)
)

func init() {
	prometheus.MustRegister(UploadCnt, UploadRowCnt, UnmappedCnt)
}
