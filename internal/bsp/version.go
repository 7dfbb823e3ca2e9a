package bsp

import "fmt"

// versionNames maps well-known file versions to the symbolic game name(s)
// that shipped them. Unknown versions are passed through rather than
// rejected - the map is advisory, not validating.
var versionNames = map[int32]string{
	17: "Left 4 Dead (beta)",
	18: "Left 4 Dead",
	19: "HL2 / CS:Source / DoD:Source",
	20: "EP2 / Portal / TF2 / L4D / Garry's Mod / The Ship / Vindictus",
	21: "L4D2 / Portal 2 / CS:GO / Alien Swarm / Dear Esther",
	22: "DOTA2",
	23: "Contagion",
	29: "Vampire: The Masquerade - Bloodlines (special)",
	42: "Desolation",
}

// VersionName returns the symbolic game name for a file version, falling
// back to a generic "unknown version" label, mirroring bspxmgr's
// BspVersion.String() switch-with-default pattern.
func VersionName(v int32) string {
	if name, ok := versionNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Unknown version (%d)", v)
}
