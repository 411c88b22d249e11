package config

import "strings"

const (
	proxyAddrVar   = "DEV_PROXY_ADDR"
	proxyTargetVar = "DEV_PROXY_TARGET"

	// ProxyLocalPrefix is rewritten to ProxyRemotePrefix by the dev proxy.
	ProxyLocalPrefix  = "/api"
	ProxyRemotePrefix = "/v1"
)

type ProxyConfig interface {
	GetProxyAddr() string
	GetProxyTarget() string
}

type Proxy struct{}

var _ ProxyConfig = Proxy{}

func (Proxy) GetProxyAddr() string {
	addr := GetEnv(proxyAddrVar, "5173")
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	return addr
}

func (Proxy) GetProxyTarget() string {
	return strings.TrimRight(GetEnv(proxyTargetVar, "https://backend-data-sentinel.vercel.app"), "/")
}
