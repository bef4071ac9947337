package utils

import (
	"bytes"
	"log"
	"net"
	"strings"
	"testing"
	"time"

	statsd "github.com/smira/go-statsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsClient_CountsAndFlushesOnShutdown(t *testing.T) {
	// Arrange: a local UDP listener standing in for StatsD
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	var logs bytes.Buffer
	l := log.New(&logs, "", 0)
	client := statsd.NewClient(conn.LocalAddr().String(), statsd.MetricPrefix("itim."), statsd.FlushInterval(10*time.Millisecond))
	s := newStatsClient(l, client, time.Hour)

	// Act
	s.Incr(MetricArgsParsed)
	s.Incr(MetricArgsParsed)
	s.Incr(MetricLoginFailure)
	s.Incr("not.a.metric")

	assert.Equal(t, int64(2), s.Count(MetricArgsParsed))
	assert.Equal(t, int64(1), s.Count(MetricLoginFailure))
	assert.Equal(t, int64(0), s.Count("not.a.metric"))
	assert.Contains(t, logs.String(), "WARN: Unknown metric not.a.metric")

	s.Shutdown()

	// Assert: the final deltas reach the listener, possibly over more than one packet
	var received strings.Builder
	buf := make([]byte, 1500)
	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(received.String(), "itim.login.failure:1|c") || !strings.Contains(received.String(), "itim.args.parsed:2|c") {
		require.NoError(t, conn.SetReadDeadline(deadline))
		n, _, err := conn.ReadFrom(buf)
		require.NoError(t, err, "got %q so far", received.String())
		received.Write(buf[:n])
	}
}

func TestStatsClient_NilIsSafe(t *testing.T) {
	var s *StatsClient

	assert.NotPanics(t, func() {
		s.Incr(MetricArgsParsed)
		s.Shutdown()
	})
	assert.Equal(t, int64(0), s.Count(MetricArgsParsed))
}
