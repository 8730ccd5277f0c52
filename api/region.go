package emucore

import (
	"github.com/user-none/eblitcore/abi"
	"github.com/user-none/eblitcore/rdb"
)

// Region represents a console video region.
type Region int

const (
	RegionNTSC Region = abi.RegionNTSC
	RegionPAL  Region = abi.RegionPAL
)

// String returns the display name of the region.
func (r Region) String() string {
	switch r {
	case RegionNTSC:
		return "NTSC"
	case RegionPAL:
		return "PAL"
	default:
		return "Unknown"
	}
}

// RegionFromGameName guesses the video region from a No-Intro game name.
// ok is false when the name carries no region.
func RegionFromGameName(name string) (Region, bool) {
	switch rdb.RegionFromName(name) {
	case "eu":
		return RegionPAL, true
	case "us", "jp":
		return RegionNTSC, true
	default:
		return RegionNTSC, false
	}
}
