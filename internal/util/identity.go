package util

import (
	"net"
	"strings"
)

// HardwareIdentity derives a device name from the hardware address of the
// first non loopback interface, without the colons. It returns "" when no
// such interface exists.
func HardwareIdentity() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) == 0 {
			continue
		}
		return strings.ToUpper(strings.ReplaceAll(iface.HardwareAddr.String(), ":", ""))
	}
	return ""
}
