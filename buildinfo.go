package circarr

import (
	"runtime/debug"
	"strings"
)

type (
	// Version is the app version
	Version struct {
		Num  string
		Hash string
	}

	VCSBuildInfo struct {
		ModVersion  string
		VCS         string
		VCSRevision string
		VCSModified bool
	}
)

func (v Version) String() string {
	if v.Hash == "" {
		return v.Num
	}
	return v.Num + "-" + v.Hash
}

// ReadVCSBuildInfo reads vcs build info from [runtime/debug.ReadBuildInfo]
func ReadVCSBuildInfo() VCSBuildInfo {
	v := VCSBuildInfo{
		ModVersion:  "(devel)",
		VCS:         "",
		VCSRevision: "",
		VCSModified: true,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" {
			v.ModVersion = info.Main.Version
		}
		for _, i := range info.Settings {
			switch i.Key {
			case "vcs":
				v.VCS = i.Value
			case "vcs.revision":
				v.VCSRevision = i.Value
			case "vcs.modified":
				v.VCSModified = i.Value != "false"
			}
		}
	}
	return v
}

// VCSStr formats vcs info
func (v VCSBuildInfo) VCSStr() string {
	var parts []string
	if v.VCS != "" {
		parts = append(parts, v.VCS)
	}
	if v.VCSRevision != "" {
		parts = append(parts, v.VCSRevision)
	}
	if v.VCSModified {
		parts = append(parts, "dev")
	}
	return strings.Join(parts, "-")
}

// Version returns the app version for this build
func (v VCSBuildInfo) Version() Version {
	return Version{
		Num:  v.ModVersion,
		Hash: v.VCSStr(),
	}
}
