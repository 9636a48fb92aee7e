package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var supervisorRestartsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "soldag",
	Subsystem: "supervisor",
	Name:      "restarts_total",
	Help:      "Count of task restarts.",
}, []string{"task"})

// Supervisor tracks task restarts.
type Supervisor struct{}

func NewSupervisor() *Supervisor {
	return &Supervisor{}
}

// ObserveRestart records one restart of task.
func (m Supervisor) ObserveRestart(task string) {
	supervisorRestartsTotal.WithLabelValues(task).Inc()
}
