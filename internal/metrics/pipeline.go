package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Analysis outcomes recorded by ObserveAnalysis.
const (
	AnalysisSuccess  = "success"
	AnalysisFallback = "fallback"
	AnalysisBlocked  = "blocked"
)

// Pipeline counts validation verdicts, rejected files and analysis outcomes.
// A nil *Pipeline records nothing.
type Pipeline struct {
	verdicts       *prometheus.CounterVec
	fileRejections *prometheus.CounterVec
	analyses       *prometheus.CounterVec
}

// NewPipeline registers the pipeline collectors on reg.
func NewPipeline(reg prometheus.Registerer) (*Pipeline, error) {
	p := &Pipeline{
		verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "validation_verdicts_total",
				Help: "Validation verdicts by outcome.",
			},
			[]string{"outcome"},
		),
		fileRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "validation_file_rejections_total",
				Help: "Files rejected as non-financial, by detected type.",
			},
			[]string{"detected_type"},
		),
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analysis_requests_total",
				Help: "Startup analysis requests by outcome.",
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []prometheus.Collector{p.verdicts, p.fileRejections, p.analyses} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ObserveVerdict records one verdict. rejectedTypes holds the detected type of
// every file that failed the financial check.
func (p *Pipeline) ObserveVerdict(valid bool, rejectedTypes []string) {
	if p == nil {
		return
	}
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	p.verdicts.WithLabelValues(outcome).Inc()
	for _, t := range rejectedTypes {
		p.fileRejections.WithLabelValues(t).Inc()
	}
}

// ObserveAnalysis records one analysis request.
func (p *Pipeline) ObserveAnalysis(outcome string) {
	if p == nil {
		return
	}
	p.analyses.WithLabelValues(outcome).Inc()
}
