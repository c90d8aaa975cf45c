package parse

import (
	"regexp"
	"strings"

	"github.com/hamed0406/linewatch/internal/domain"
)

// A hop line starts with its 1-based index; anything else is banner noise
// ("traceroute to ...", "Tracing route ...") or a continuation line we do not
// model.
var hopLineRe = regexp.MustCompile(`^\s*(\d+)\s+(.+)$`)

// Hop RTTs look like "0.419 ms", "12 ms" or the Windows "<1 ms".
var hopRTTRe = regexp.MustCompile(`<?([\d]+(?:[.,]\d+)?)\s*ms`)

// Traceroute extracts the ordered hop list from raw traceroute/tracert
// output, capped at maxHops. A hop whose line cannot be parsed beyond its
// index still occupies its slot with host and RTT absent, so the sequence
// length reflects what the tool actually reported.
func Traceroute(raw string, maxHops int) domain.TraceResult {
	var hops []domain.Hop
	lastIndex := 0

	for _, line := range strings.Split(raw, "\n") {
		caps := hopLineRe.FindStringSubmatch(line)
		if caps == nil {
			continue
		}
		index := atoiSafe(caps[1])
		// Tools emit strictly increasing indices; anything else (repeated
		// headers, multi-path continuations) is not a new hop.
		if index != lastIndex+1 {
			continue
		}
		if maxHops > 0 && len(hops) >= maxHops {
			break
		}
		hops = append(hops, parseHop(index, caps[2]))
		lastIndex = index
	}

	return domain.TraceResult{Hops: hops}
}

func parseHop(index int, rest string) domain.Hop {
	hop := domain.Hop{Index: index}

	// tracert renders timeouts as a trailing message rather than a bare
	// star-only line; none of its words is a host.
	if strings.Contains(rest, "Request timed out") {
		return hop
	}
	if caps := hopRTTRe.FindStringSubmatch(rest); caps != nil {
		hop.RTTMS = decimalField(caps[1])
	}
	hop.Host = hopHost(rest)
	return hop
}

// hopHost picks the host field out of a hop line. Unix traceroute puts the
// host first ("gateway (192.168.1.1)  0.4 ms"); Windows tracert puts it last
// ("   <1 ms    <1 ms    <1 ms  192.168.1.1"). Either way it is the first
// token that is neither a timeout star, an RTT number, a unit, nor an
// annotation.
func hopHost(rest string) string {
	for _, tok := range strings.Fields(rest) {
		switch {
		case tok == "*" || tok == "ms":
			continue
		case strings.HasPrefix(tok, "!"): // !H, !N etc.
			continue
		case strings.HasPrefix(tok, "<"): // "<1" from tracert
			continue
		}
		if _, err := parseDecimal(tok); err == nil {
			continue
		}
		// Bare "(192.168.1.1)" when the reverse lookup produced no name.
		return strings.Trim(tok, "()")
	}
	return ""
}

func atoiSafe(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
