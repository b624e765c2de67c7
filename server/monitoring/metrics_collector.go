package monitoring

import (
	"sync"
	"time"
)

// MetricsCollector собирает метрики производительности
type MetricsCollector struct {
	mu sync.RWMutex

	// HTTP метрики
	httpRequestsTotal     int64
	httpRequestsSuccess   int64
	httpRequestsError     int64
	httpRequestDuration   []time.Duration
	httpRequestDurationMu sync.RWMutex

	// Database метрики
	dbQueriesTotal      int64
	dbQueriesDuration   []time.Duration
	dbQueriesDurationMu sync.RWMutex
	dbConnectionsActive int64
	dbConnectionsIdle   int64

	// Метрики проверок дубликатов
	fullChecksTotal    int64
	quickChecksTotal   int64
	duplicatesDetected int64
	similarDetected    int64
	checkDuration      []time.Duration
	checkDurationMu    sync.RWMutex

	// Системные метрики
	startTime     time.Time
	lastResetTime time.Time
}

// NewMetricsCollector создает новый сборщик метрик
func NewMetricsCollector() *MetricsCollector {
	now := time.Now()
	return &MetricsCollector{
		startTime:     now,
		lastResetTime: now,
	}
}

// RecordHTTPRequest записывает HTTP запрос
func (mc *MetricsCollector) RecordHTTPRequest(success bool, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.httpRequestsTotal++
	if success {
		mc.httpRequestsSuccess++
	} else {
		mc.httpRequestsError++
	}

	mc.httpRequestDurationMu.Lock()
	mc.httpRequestDuration = appendBounded(mc.httpRequestDuration, duration)
	mc.httpRequestDurationMu.Unlock()
}

// RecordDBQuery записывает запрос к БД
func (mc *MetricsCollector) RecordDBQuery(duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.dbQueriesTotal++

	mc.dbQueriesDurationMu.Lock()
	mc.dbQueriesDuration = appendBounded(mc.dbQueriesDuration, duration)
	mc.dbQueriesDurationMu.Unlock()
}

// SetDBConnections устанавливает количество подключений к БД
func (mc *MetricsCollector) SetDBConnections(active, idle int64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.dbConnectionsActive = active
	mc.dbConnectionsIdle = idle
}

// RecordFullCheck записывает полную проверку кандидата
func (mc *MetricsCollector) RecordFullCheck(isDuplicate, hasSimilar bool, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.fullChecksTotal++
	if isDuplicate {
		mc.duplicatesDetected++
	}
	if hasSimilar {
		mc.similarDetected++
	}

	mc.checkDurationMu.Lock()
	mc.checkDuration = appendBounded(mc.checkDuration, duration)
	mc.checkDurationMu.Unlock()
}

// RecordQuickCheck записывает быструю проверку при вводе
func (mc *MetricsCollector) RecordQuickCheck(isDuplicate bool, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.quickChecksTotal++
	if isDuplicate {
		mc.duplicatesDetected++
	}

	mc.checkDurationMu.Lock()
	mc.checkDuration = appendBounded(mc.checkDuration, duration)
	mc.checkDurationMu.Unlock()
}

// appendBounded добавляет запись, храня последние 1000 значений
func appendBounded(samples []time.Duration, d time.Duration) []time.Duration {
	samples = append(samples, d)
	if len(samples) > 1000 {
		samples = samples[len(samples)-1000:]
	}
	return samples
}

// averageDuration вычисляет среднее по массиву длительностей
func averageDuration(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	total := time.Duration(0)
	for _, d := range samples {
		total += d
	}
	return total / time.Duration(len(samples))
}

// GetMetrics возвращает текущие метрики
func (mc *MetricsCollector) GetMetrics() map[string]interface{} {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	mc.httpRequestDurationMu.RLock()
	avgHTTPDuration := averageDuration(mc.httpRequestDuration)
	mc.httpRequestDurationMu.RUnlock()

	mc.dbQueriesDurationMu.RLock()
	avgDBDuration := averageDuration(mc.dbQueriesDuration)
	mc.dbQueriesDurationMu.RUnlock()

	mc.checkDurationMu.RLock()
	avgCheckDuration := averageDuration(mc.checkDuration)
	mc.checkDurationMu.RUnlock()

	// Вычисляем success rate
	successRate := 0.0
	if mc.httpRequestsTotal > 0 {
		successRate = float64(mc.httpRequestsSuccess) / float64(mc.httpRequestsTotal) * 100
	}

	// Вычисляем requests per second
	uptime := time.Since(mc.startTime).Seconds()
	requestsPerSecond := 0.0
	if uptime > 0 {
		requestsPerSecond = float64(mc.httpRequestsTotal) / uptime
	}

	return map[string]interface{}{
		"http": map[string]interface{}{
			"requests_total":      mc.httpRequestsTotal,
			"requests_success":    mc.httpRequestsSuccess,
			"requests_error":      mc.httpRequestsError,
			"success_rate":        successRate,
			"avg_duration_ms":     avgHTTPDuration.Milliseconds(),
			"requests_per_second": requestsPerSecond,
		},
		"database": map[string]interface{}{
			"queries_total":      mc.dbQueriesTotal,
			"avg_duration_ms":    avgDBDuration.Milliseconds(),
			"connections_active": mc.dbConnectionsActive,
			"connections_idle":   mc.dbConnectionsIdle,
		},
		"checks": map[string]interface{}{
			"full_checks_total":   mc.fullChecksTotal,
			"quick_checks_total":  mc.quickChecksTotal,
			"duplicates_detected": mc.duplicatesDetected,
			"similar_detected":    mc.similarDetected,
			"avg_duration_ms":     avgCheckDuration.Milliseconds(),
		},
		"system": map[string]interface{}{
			"uptime_seconds": uptime,
			"start_time":     mc.startTime.Format(time.RFC3339),
		},
	}
}

// Reset сбрасывает метрики
func (mc *MetricsCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.httpRequestsTotal = 0
	mc.httpRequestsSuccess = 0
	mc.httpRequestsError = 0
	mc.dbQueriesTotal = 0
	mc.dbConnectionsActive = 0
	mc.dbConnectionsIdle = 0
	mc.fullChecksTotal = 0
	mc.quickChecksTotal = 0
	mc.duplicatesDetected = 0
	mc.similarDetected = 0
	mc.lastResetTime = time.Now()

	mc.httpRequestDurationMu.Lock()
	mc.httpRequestDuration = nil
	mc.httpRequestDurationMu.Unlock()

	mc.dbQueriesDurationMu.Lock()
	mc.dbQueriesDuration = nil
	mc.dbQueriesDurationMu.Unlock()

	mc.checkDurationMu.Lock()
	mc.checkDuration = nil
	mc.checkDurationMu.Unlock()
}
