package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP stores the client IP under "real_ip". Forwarding headers are only
// read when the direct peer is one of trusted (IPs or CIDRs); otherwise the
// peer address is the client. From a trusted peer CF-Connecting-IP wins,
// then the right-most X-Forwarded-For entry that is not itself trusted.
func RealIP(trusted ...string) gin.HandlerFunc {
	nets := ParseTrusted(trusted)
	return func(c *gin.Context) {
		c.Set("real_ip", realIP(c, nets))
		c.Next()
	}
}

// ParseTrusted turns "10.0.0.1" and "10.0.0.0/8" style entries into networks.
// Invalid entries are skipped.
func ParseTrusted(entries []string) []*net.IPNet {
	out := make([]*net.IPNet, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.Contains(e, "/") {
			ip := net.ParseIP(e)
			if ip == nil {
				continue
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		if _, n, err := net.ParseCIDR(e); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func isTrusted(ip net.IP, nets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func realIP(c *gin.Context, nets []*net.IPNet) string {
	peer := c.RemoteIP()
	if !isTrusted(net.ParseIP(peer), nets) {
		return peer
	}
	if ip := net.ParseIP(strings.TrimSpace(c.GetHeader("CF-Connecting-IP"))); ip != nil {
		return ip.String()
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			ip := net.ParseIP(strings.TrimSpace(hops[i]))
			if ip == nil {
				break
			}
			if !isTrusted(ip, nets) {
				return ip.String()
			}
		}
	}
	return peer
}
