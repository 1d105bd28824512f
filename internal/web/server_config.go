package web

import (
	"github.com/rook-computer/starfield/internal/config"
)

// ServerConfig contains settings for running the HTTP server.
//
// The intended defaults differ per binary:
// - device:  disabled unless a listen address is configured
// - preview: :8080
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

func ServerConfigFromSettings(s config.Settings) ServerConfig {
	return ServerConfig{ListenAddr: s.Listen, DevMode: s.Dev}
}

// DisplayURL turns a listen address into something a browser can open.
func DisplayURL(addr string) string {
	switch {
	case addr == "":
		return "http://127.0.0.1:8080/"
	case addr[0] == ':':
		return "http://127.0.0.1" + addr + "/"
	default:
		return "http://" + addr + "/"
	}
}
