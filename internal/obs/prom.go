package obs

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PromMeter bridges the Meter interface onto a prometheus registry.
// Collectors are created lazily on first use of a name; the label keys
// seen then are fixed for that name.
type PromMeter struct {
	reg prometheus.Registerer

	mu       sync.Mutex
	counters map[string]*prometheus.CounterVec
	hists    map[string]*prometheus.HistogramVec
}

func NewPromMeter(reg prometheus.Registerer) *PromMeter {
	return &PromMeter{
		reg:      reg,
		counters: make(map[string]*prometheus.CounterVec),
		hists:    make(map[string]*prometheus.HistogramVec),
	}
}

func (m *PromMeter) Counter(name string, value float64, labels ...Label) {
	keys, vals := splitLabels(labels)
	m.mu.Lock()
	cv, ok := m.counters[name]
	if !ok {
		cv = prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: name}, keys)
		m.reg.MustRegister(cv)
		m.counters[name] = cv
	}
	m.mu.Unlock()
	cv.WithLabelValues(vals...).Add(value)
}

func (m *PromMeter) Histogram(name string, value float64, labels ...Label) {
	keys, vals := splitLabels(labels)
	m.mu.Lock()
	hv, ok := m.hists[name]
	if !ok {
		hv = prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: name, Buckets: prometheus.DefBuckets}, keys)
		m.reg.MustRegister(hv)
		m.hists[name] = hv
	}
	m.mu.Unlock()
	hv.WithLabelValues(vals...).Observe(value)
}

func splitLabels(labels []Label) (keys, vals []string) {
	if len(labels) == 0 {
		return nil, nil
	}
	sorted := append([]Label(nil), labels...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	keys = make([]string, len(sorted))
	vals = make([]string, len(sorted))
	for i, l := range sorted {
		keys[i] = l.Key
		vals[i] = l.Value
	}
	return keys, vals
}
