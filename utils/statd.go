package utils

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	statsd "github.com/smira/go-statsd"
)

const (
	MetricArgsParsed      = "args.parsed"
	MetricAttributesBuilt = "attributes.built"
	MetricLoginSuccess    = "login.success"
	MetricLoginFailure    = "login.failure"
)

var trackedMetrics = []string{MetricArgsParsed, MetricAttributesBuilt, MetricLoginSuccess, MetricLoginFailure}

// StatsClient counts CLI events and sends the deltas to StatsD every flush interval.
// A nil *StatsClient is valid and drops everything.
type StatsClient struct {
	client *statsd.Client
	logger *log.Logger

	counters map[string]*int64
	previous map[string]int64

	interval time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewStatsClient creates a new StatsD client sending to addr ("host:port")
func NewStatsClient(l *log.Logger, addr string, prefix string) *StatsClient {
	l.Printf("INFO: Initializing StatsD client to %s", addr)

	client := statsd.NewClient(addr,
		statsd.MaxPacketSize(1400),
		statsd.MetricPrefix(prefix),
	)
	return newStatsClient(l, client, time.Second)
}

func newStatsClient(l *log.Logger, client *statsd.Client, interval time.Duration) *StatsClient {
	s := &StatsClient{
		client:   client,
		logger:   l,
		counters: make(map[string]*int64, len(trackedMetrics)),
		previous: make(map[string]int64, len(trackedMetrics)),
		interval: interval,
		done:     make(chan struct{}),
	}
	for _, name := range trackedMetrics {
		s.counters[name] = new(int64)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.periodicSend()
	}()
	return s
}

func (s *StatsClient) periodicSend() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("ERROR: PANIC in periodicSend: %v", r)
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sendDeltas()
		case <-s.done:
			// final flush before shutting down
			s.sendDeltas()
			return
		}
	}
}

// sendDeltas only runs on the flush goroutine, so previous needs no lock
func (s *StatsClient) sendDeltas() {
	for _, name := range trackedMetrics {
		current := atomic.LoadInt64(s.counters[name])
		delta := current - s.previous[name]
		s.previous[name] = current
		if delta != 0 {
			s.client.Incr(name, delta)
		}
	}
}

// Incr adds one to a tracked metric, unknown names are ignored
func (s *StatsClient) Incr(name string) {
	if s == nil {
		return
	}
	if c, ok := s.counters[name]; ok {
		atomic.AddInt64(c, 1)
	} else {
		s.logger.Printf("WARN: Unknown metric %s", name)
	}
}

// Count returns the running total of a tracked metric
func (s *StatsClient) Count(name string) int64 {
	if s == nil {
		return 0
	}
	if c, ok := s.counters[name]; ok {
		return atomic.LoadInt64(c)
	}
	return 0
}

// Shutdown stops the periodic sending goroutine and flushes metrics
func (s *StatsClient) Shutdown() {
	if s == nil {
		return
	}
	s.logger.Println("INFO: Shutting down StatsClient...")
	close(s.done)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		s.logger.Println("WARN: StatsClient shutdown timed out after 3 seconds")
	}

	if err := s.client.Close(); err != nil {
		s.logger.Printf("WARN: Error closing StatsD client: %v", err)
	}
}
