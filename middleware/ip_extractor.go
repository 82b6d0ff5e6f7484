package middleware

import (
	"fmt"
	"net"

	"github.com/labstack/echo/v4"
)

// NewIPExtractor returns the client address strategy for the rate limiter and
// request logs. Without trusted proxies the peer address is used as-is and
// X-Forwarded-For is ignored. With proxies, only hops inside the given CIDR
// ranges are skipped when walking X-Forwarded-For.
func NewIPExtractor(trustedProxies []string) (echo.IPExtractor, error) {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", cidr, err)
		}
		options = append(options, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(options...), nil
}
