package panel

import "github.com/prometheus/client_golang/prometheus"

func (p *Panel) WritesCounter(setting, result string) prometheus.Counter {
	return p.writes.WithLabelValues(setting, result)
}
