package parse

import (
	"math"
	"testing"
)

const linuxPingOK = `PING 8.8.8.8 (8.8.8.8) 56(84) bytes of data.
64 bytes from 8.8.8.8: icmp_seq=1 ttl=115 time=19.2 ms
64 bytes from 8.8.8.8: icmp_seq=2 ttl=115 time=18.7 ms

--- 8.8.8.8 ping statistics ---
5 packets transmitted, 5 received, 0% packet loss, time 4004ms
rtt min/avg/max/mdev = 18.677/19.002/19.543/0.352 ms
`

const macPingPartialLoss = `PING 10.0.0.1 (10.0.0.1): 56 data bytes
64 bytes from 10.0.0.1: icmp_seq=0 ttl=64 time=44.347 ms
Request timeout for icmp_seq 1

--- 10.0.0.1 ping statistics ---
4 packets transmitted, 3 packets received, 25.0% packet loss
round-trip min/avg/max/stddev = 41.120/44.347/48.990/2.771 ms
`

const windowsPingOK = `
Pinging 1.1.1.1 with 32 bytes of data:
Reply from 1.1.1.1: bytes=32 time=36ms TTL=58

Ping statistics for 1.1.1.1:
    Packets: Sent = 4, Received = 4, Lost = 0 (0% loss),
Approximate round trip times in milli-seconds:
    Minimum = 35ms, Maximum = 40ms, Average = 37ms
`

const localePingComma = `--- 192.168.1.1 ping statistics ---
5 packets transmitted, 5 received, 0,0% packet loss, time 4003ms
rtt min/avg/max/mdev = 1,102/1,348/1,601/0,181 ms
`

const noStatsPing = `PING 203.0.113.9 (203.0.113.9) 56(84) bytes of data.
`

const totalLossPing = `PING 203.0.113.9 (203.0.113.9) 56(84) bytes of data.

--- 203.0.113.9 ping statistics ---
5 packets transmitted, 0 received, 100% packet loss, time 4120ms
`

func f(v float64) *float64 { return &v }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestPing_LinuxStatistics(t *testing.T) {
	m := Ping(linuxPingOK, 5)
	if m.PacketsSent != 5 || m.PacketsReceived != 5 {
		t.Fatalf("counts: %+v", m)
	}
	if !approx(m.PacketLossPct, 0) {
		t.Fatalf("loss: %v", m.PacketLossPct)
	}
	if m.RTTMinMS == nil || !approx(*m.RTTMinMS, 18.677) {
		t.Fatalf("min: %v", m.RTTMinMS)
	}
	if m.RTTAvgMS == nil || !approx(*m.RTTAvgMS, 19.002) {
		t.Fatalf("avg: %v", m.RTTAvgMS)
	}
	if m.RTTMaxMS == nil || !approx(*m.RTTMaxMS, 19.543) {
		t.Fatalf("max: %v", m.RTTMaxMS)
	}
	if m.RTTStddevMS == nil || !approx(*m.RTTStddevMS, 0.352) {
		t.Fatalf("stddev: %v", m.RTTStddevMS)
	}
}

func TestPing_MacPartialLoss(t *testing.T) {
	m := Ping(macPingPartialLoss, 4)
	if m.PacketsSent != 4 || m.PacketsReceived != 3 {
		t.Fatalf("counts: %+v", m)
	}
	if !approx(m.PacketLossPct, 25) {
		t.Fatalf("loss derived from counts, got %v", m.PacketLossPct)
	}
	if m.RTTAvgMS == nil || !approx(*m.RTTAvgMS, 44.347) {
		t.Fatalf("avg: %v", m.RTTAvgMS)
	}
}

func TestPing_Windows(t *testing.T) {
	m := Ping(windowsPingOK, 4)
	if m.PacketsSent != 4 || m.PacketsReceived != 4 {
		t.Fatalf("counts: %+v", m)
	}
	if m.RTTMinMS == nil || *m.RTTMinMS != 35 {
		t.Fatalf("min: %v", m.RTTMinMS)
	}
	if m.RTTMaxMS == nil || *m.RTTMaxMS != 40 {
		t.Fatalf("max: %v", m.RTTMaxMS)
	}
	if m.RTTAvgMS == nil || *m.RTTAvgMS != 37 {
		t.Fatalf("avg: %v", m.RTTAvgMS)
	}
	if m.RTTStddevMS != nil {
		t.Fatalf("windows ping has no stddev, got %v", *m.RTTStddevMS)
	}
}

func TestPing_LocaleDecimalComma(t *testing.T) {
	m := Ping(localePingComma, 5)
	if !approx(m.PacketLossPct, 0) {
		t.Fatalf("loss: %v", m.PacketLossPct)
	}
	if m.RTTAvgMS == nil || !approx(*m.RTTAvgMS, 1.348) {
		t.Fatalf("avg: %v", m.RTTAvgMS)
	}
}

func TestPing_MissingStatisticsLine(t *testing.T) {
	m := Ping(noStatsPing, 5)
	if m.PacketsSent != 5 || m.PacketsReceived != 0 {
		t.Fatalf("counts: %+v", m)
	}
	if !approx(m.PacketLossPct, 100) {
		t.Fatalf("loss: %v", m.PacketLossPct)
	}
	if m.RTTMinMS != nil || m.RTTAvgMS != nil || m.RTTMaxMS != nil || m.RTTStddevMS != nil {
		t.Fatalf("RTT fields must be absent at 100%% loss: %+v", m)
	}
}

func TestPing_TotalLoss(t *testing.T) {
	m := Ping(totalLossPing, 5)
	if m.PacketsReceived != 0 || !approx(m.PacketLossPct, 100) {
		t.Fatalf("total loss: %+v", m)
	}
	if m.RTTAvgMS != nil {
		t.Fatalf("RTT must be absent when nothing was received")
	}
}

func TestPing_EmptyAndGarbage(t *testing.T) {
	for _, raw := range []string{"", "ping: unknown host example.invalid\n", "lorem ipsum 42"} {
		m := Ping(raw, 3)
		if m.PacketsSent != 3 || m.PacketsReceived != 0 || !approx(m.PacketLossPct, 100) {
			t.Fatalf("garbage %q: %+v", raw, m)
		}
	}
}

func TestPing_DistrustsImpossibleCounts(t *testing.T) {
	raw := "3 packets transmitted, 7 received, 0% packet loss\n"
	m := Ping(raw, 3)
	if m.PacketsReceived > m.PacketsSent {
		t.Fatalf("received must never exceed sent: %+v", m)
	}
}

func TestPing_ReceivedNeverExceedsSent(t *testing.T) {
	samples := []string{linuxPingOK, macPingPartialLoss, windowsPingOK, localePingComma, noStatsPing, totalLossPing}
	for _, raw := range samples {
		m := Ping(raw, 5)
		if m.PacketsReceived > m.PacketsSent {
			t.Fatalf("invariant violated: %+v", m)
		}
		want := 100.0
		if m.PacketsSent > 0 {
			want = 100 * float64(m.PacketsSent-m.PacketsReceived) / float64(m.PacketsSent)
		}
		if !approx(m.PacketLossPct, want) {
			t.Fatalf("loss %v not derived from counts %d/%d", m.PacketLossPct, m.PacketsReceived, m.PacketsSent)
		}
	}
}
