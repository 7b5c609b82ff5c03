package metrics

import (
	"fmt"
	"sort"
	"time"
)

// Processor traduz eventos do serviço em chamadas ao Provider.
type Processor struct {
	definitions map[string]MetricDefinition
	provider    Provider
}

// NewProcessor cria um processador linkando IDs aos seus nomes e tipos reais.
// Definições nil usam DefaultDefinitions.
func NewProcessor(defs map[string]MetricDefinition, provider Provider) *Processor {
	if defs == nil {
		defs = DefaultDefinitions
	}
	return &Processor{
		definitions: defs,
		provider:    provider,
	}
}

// Record envia um valor para a métrica id com as tags informadas.
func (p *Processor) Record(id string, val float64, tags map[string]string) error {
	def, exists := p.definitions[id]
	if !exists {
		return fmt.Errorf("métrica não definida: %s", id)
	}

	finalTags := make([]string, 0, len(tags))
	for k, v := range tags {
		finalTags = append(finalTags, fmt.Sprintf("%s:%s", k, v))
	}
	sort.Strings(finalTags)

	switch def.Type {
	case TypeCount:
		return p.provider.Count(def.Name, val, finalTags)
	case TypeGauge:
		return p.provider.Gauge(def.Name, val, finalTags)
	case TypeHistogram:
		return p.provider.Histogram(def.Name, val, finalTags)
	default:
		return fmt.Errorf("tipo de métrica desconhecido: %s", def.Type)
	}
}

// ObserveRequest registra contagem e latência de uma requisição.
func (p *Processor) ObserveRequest(route string, status int, latency time.Duration) error {
	tags := map[string]string{
		"route":  route,
		"status": fmt.Sprintf("%d", status),
	}
	if err := p.Record(RequestCount, 1, tags); err != nil {
		return err
	}
	return p.Record(RequestLatency, float64(latency.Milliseconds()), tags)
}

// ObserveOperation conta uma operação de livro pelo código de resultado ("ok" no sucesso).
func (p *Processor) ObserveOperation(operation, code string) error {
	return p.Record(BookOperation, 1, map[string]string{
		"operation": operation,
		"code":      code,
	})
}
