package metrics

import "time"

// ObserveAnswer implements ports.AnswerObserver.
func (m *QAMetrics) ObserveAnswer(documents, sentences int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.answersTotal.WithLabelValues(m.service, status).Inc()
	m.answerDuration.WithLabelValues(m.service, status).Observe(duration.Seconds())
	if err != nil {
		return
	}
	m.corpusDocuments.Observe(float64(documents))
	m.candidateSentences.Observe(float64(sentences))
}
