package pptx

import "fmt"

// Version information written to the extended document properties.
const (
	VersionMajor = 1
	VersionMinor = 2
	VersionPatch = 0
)

// Version is the AppVersion string in MM.mmmm form expected by Office.
var Version = fmt.Sprintf("%02d.%04d", VersionMajor, VersionMinor*100+VersionPatch)
