package realip

// PresetLoopbackProxy trusts a reverse proxy running on the same host (for
// example NGINX on localhost), IPv4 and IPv6.
func PresetLoopbackProxy() Option {
	return TrustedSources("127.0.0.0/8", "::1/128")
}

// PresetPrivateNetworkProxy trusts loopback plus the private network ranges
// commonly used for upstream proxies in VM and internal-network deployments.
func PresetPrivateNetworkProxy() Option {
	return TrustedSources(
		"127.0.0.0/8",
		"::1/128",
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"fc00::/7",
	)
}

// PresetHardenedProxy combines private-network trust with header hiding, so
// downstream handlers never see raw forwarding headers.
func PresetHardenedProxy() Option {
	return func(c *config) error {
		return applyOptions(c,
			PresetPrivateNetworkProxy(),
			HideHeaders(true),
		)
	}
}
