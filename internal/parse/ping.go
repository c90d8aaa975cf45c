// Package parse turns raw ping/traceroute output into typed metrics. Parsing
// is best-effort: values that are missing or out of range degrade to absent
// fields, never to an error, so a noisy probe still yields a usable result.
package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hamed0406/linewatch/internal/domain"
)

var (
	// "5 packets transmitted, 4 received, ..." (Linux) or
	// "5 packets transmitted, 4 packets received, ..." (macOS/BSD)
	unixCountsRe = regexp.MustCompile(`(\d+)\s+packets transmitted,\s*(\d+)\s*(?:packets\s+)?received`)
	// "Packets: Sent = 4, Received = 4, ..." (Windows)
	winCountsRe = regexp.MustCompile(`Sent = (\d+), Received = (\d+)`)
	// "0% packet loss", "0.0% packet loss", "25% loss", "0,0% packet loss"
	lossRe = regexp.MustCompile(`([\d]+(?:[.,]\d+)?)%\s*(?:packet\s+loss|loss)`)
	// "rtt min/avg/max/mdev = 18.677/19.002/19.543/0.352 ms" (Linux) or
	// "round-trip min/avg/max/stddev = ..." (macOS), mdev/stddev optional
	unixRTTRe = regexp.MustCompile(`(?:rtt|round-trip)[^=]*=\s*([\d.,]+)/([\d.,]+)/([\d.,]+)(?:/([\d.,]+))?\s*ms`)
	// "Minimum = 35ms, Maximum = 40ms, Average = 37ms" (Windows)
	winRTTRe = regexp.MustCompile(`Minimum = ([\d.,]+)ms, Maximum = ([\d.,]+)ms, Average = ([\d.,]+)ms`)
)

// Ping extracts packet counts, loss and RTT statistics from raw ping output.
// expectedSent is the configured packet count, used when the statistics line
// is missing entirely (hard-down targets): the result then reports
// sent=expectedSent, received=0, loss=100 with all RTT fields absent.
func Ping(raw string, expectedSent int) domain.PingMetrics {
	if expectedSent < 0 {
		expectedSent = 0
	}

	sent, received, ok := packetCounts(raw)
	if !ok {
		// No trustworthy counts. Fall back to the claimed loss percentage,
		// and failing that assume everything was lost.
		m := domain.PingMetrics{PacketsSent: expectedSent, PacketLossPct: 100}
		if loss, lossOK := lastLoss(raw); lossOK {
			m.PacketLossPct = loss
			m.PacketsReceived = int(math.Round(float64(expectedSent) * (100 - loss) / 100))
		}
		if m.PacketsReceived > 0 {
			fillRTT(&m, raw)
		}
		return m
	}

	m := domain.PingMetrics{PacketsSent: sent, PacketsReceived: received}
	if sent > 0 {
		m.PacketLossPct = 100 * float64(sent-received) / float64(sent)
	} else {
		m.PacketLossPct = 100
	}
	if received > 0 {
		fillRTT(&m, raw)
	}
	return m
}

// packetCounts returns the last sent/received pair found in the output, or
// ok=false when none is present or the pair fails sanity checks.
func packetCounts(raw string) (sent, received int, ok bool) {
	for _, re := range []*regexp.Regexp{unixCountsRe, winCountsRe} {
		matches := re.FindAllStringSubmatch(raw, -1)
		if len(matches) == 0 {
			continue
		}
		last := matches[len(matches)-1]
		s, err1 := strconv.Atoi(last[1])
		r, err2 := strconv.Atoi(last[2])
		if err1 != nil || err2 != nil {
			continue
		}
		// A received count above sent means the line is garbage; distrust it.
		if s <= 0 || r < 0 || r > s {
			continue
		}
		return s, r, true
	}
	return 0, 0, false
}

// lastLoss returns the last "N% loss" percentage in the output. Vendor
// banners can embed earlier percentages, so only the final match counts.
func lastLoss(raw string) (float64, bool) {
	matches := lossRe.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return 0, false
	}
	v, err := parseDecimal(matches[len(matches)-1][1])
	if err != nil || !saneValue(v) || v > 100 {
		return 0, false
	}
	return v, true
}

func fillRTT(m *domain.PingMetrics, raw string) {
	if caps := lastSubmatch(unixRTTRe, raw); caps != nil {
		m.RTTMinMS = decimalField(caps[1])
		m.RTTAvgMS = decimalField(caps[2])
		m.RTTMaxMS = decimalField(caps[3])
		if caps[4] != "" {
			m.RTTStddevMS = decimalField(caps[4])
		}
		return
	}
	if caps := lastSubmatch(winRTTRe, raw); caps != nil {
		m.RTTMinMS = decimalField(caps[1])
		m.RTTMaxMS = decimalField(caps[2])
		m.RTTAvgMS = decimalField(caps[3])
	}
}

func lastSubmatch(re *regexp.Regexp, raw string) []string {
	matches := re.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}
	return matches[len(matches)-1]
}

// decimalField parses one RTT value, returning nil when it is missing or
// fails the range sanity check.
func decimalField(s string) *float64 {
	v, err := parseDecimal(s)
	if err != nil || !saneValue(v) {
		return nil
	}
	return &v
}

// parseDecimal accepts both "." and locale "," decimal separators.
func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// saneValue rejects values we never trust from external output: negatives,
// NaN and infinities.
func saneValue(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
