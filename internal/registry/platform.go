package registry

import (
	"encoding/json"
	"net"
	"os"
	"runtime"
)

// PlatformInfo describes the machine a test was run on. It is stored as a
// string alongside registered results.
type PlatformInfo struct {
	Architecture string `json:"architecture"`
	System       string `json:"system_name"`
	NetworkName  string `json:"network_name"`
	IPAddr       string `json:"ip_addr"`
	GoVersion    string `json:"go_version"`
}

// GetPlatformInfo collects the platform fingerprint of the current machine.
func GetPlatformInfo() PlatformInfo {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	ipAddr := "127.0.0.1"
	if addrs, err := net.LookupIP(hostname); err == nil && len(addrs) > 0 {
		ipAddr = addrs[0].String()
	}

	return PlatformInfo{
		Architecture: runtime.GOARCH,
		System:       runtime.GOOS,
		NetworkName:  hostname,
		IPAddr:       ipAddr,
		GoVersion:    runtime.Version(),
	}
}

// String returns the JSON serialization of the platform fingerprint.
// The registry stores the platform as an opaque string.
func (p PlatformInfo) String() string {
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(data)
}
