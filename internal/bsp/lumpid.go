package bsp

// LumpID enumerates the 64 positionally-indexed byte regions of a BSP file.
// The numeric value IS the directory position: entry i always describes
// LumpID(i). Several numbers carry more than one symbolic name depending on
// which game wrote the file (e.g. 22 is PORTALS in most games but
// PROPCOLLISION in the L4D family); the primary name below is used for
// display, aliases are resolved through LumpIDByAlias.
type LumpID int

const NumLumps = 64

const (
	LumpEntities LumpID = iota
	LumpPlanes
	LumpTexData
	LumpVertexes
	LumpVisibility
	LumpNodes
	LumpTexInfo
	LumpFaces
	LumpLighting
	LumpOcclusion
	LumpLeafs
	LumpFaceIDs
	LumpEdges
	LumpSurfEdges
	LumpModels
	LumpWorldLights
	LumpLeafFaces
	LumpLeafBrushes
	LumpBrushes
	LumpBrushSides
	LumpAreas
	LumpAreaPortals
	LumpPortals // alias: PROPCOLLISION
	LumpClusters // alias: PROPHULLS
	LumpPortalVerts // alias: PROPHULLVERTS
	LumpClusterPortals // alias: PROPTRIS
	LumpDispInfo
	LumpOriginalFaces
	LumpPhysDisp
	LumpPhysCollide
	LumpVertNormals
	LumpVertNormalIndices
	LumpDispLightmapAlphas
	LumpDispVerts
	LumpDispLightmapSamplePositions
	LumpGameLump
	LumpLeafWaterData
	LumpPrimitives
	LumpPrimVerts
	LumpPrimIndices
	LumpPakfile
	LumpClipPortalVerts
	LumpCubemaps
	LumpTexDataStringData
	LumpTexDataStringTable
	LumpOverlays
	LumpLeafMinDistToWater
	LumpFaceMacroTextureInfo
	LumpDispTris
	LumpPhysCollideSurface // alias: PROP_BLOB
	LumpWaterOverlays
	LumpLightmapPages // alias: LEAF_AMBIENT_INDEX_HDR
	LumpLightmapPageInfos // alias: LEAF_AMBIENT_INDEX
	LumpLightingHDR
	LumpWorldLightsHDR
	LumpLeafAmbientLightingHDR
	LumpLeafAmbientLighting
	LumpXZipPakfile
	LumpFacesHDR
	LumpMapFlags
	LumpOverlayFades
	LumpOverlaySystemLevels
	LumpPhysLevel
	LumpDispMultiblend
)

var lumpNames = [NumLumps]string{
	LumpEntities:                     "ENTITIES",
	LumpPlanes:                       "PLANES",
	LumpTexData:                      "TEXDATA",
	LumpVertexes:                     "VERTEXES",
	LumpVisibility:                   "VISIBILITY",
	LumpNodes:                        "NODES",
	LumpTexInfo:                      "TEXINFO",
	LumpFaces:                        "FACES",
	LumpLighting:                     "LIGHTING",
	LumpOcclusion:                    "OCCLUSION",
	LumpLeafs:                        "LEAFS",
	LumpFaceIDs:                      "FACEIDS",
	LumpEdges:                        "EDGES",
	LumpSurfEdges:                    "SURFEDGES",
	LumpModels:                       "MODELS",
	LumpWorldLights:                  "WORLDLIGHTS",
	LumpLeafFaces:                    "LEAFFACES",
	LumpLeafBrushes:                  "LEAFBRUSHES",
	LumpBrushes:                      "BRUSHES",
	LumpBrushSides:                   "BRUSHSIDES",
	LumpAreas:                        "AREAS",
	LumpAreaPortals:                  "AREAPORTALS",
	LumpPortals:                      "PORTALS",
	LumpClusters:                     "CLUSTERS",
	LumpPortalVerts:                  "PORTALVERTS",
	LumpClusterPortals:               "CLUSTERPORTALS",
	LumpDispInfo:                     "DISPINFO",
	LumpOriginalFaces:                "ORIGINALFACES",
	LumpPhysDisp:                     "PHYSDISP",
	LumpPhysCollide:                  "PHYSCOLLIDE",
	LumpVertNormals:                  "VERTNORMALS",
	LumpVertNormalIndices:            "VERTNORMALINDICES",
	LumpDispLightmapAlphas:           "DISP_LIGHTMAP_ALPHAS",
	LumpDispVerts:                    "DISP_VERTS",
	LumpDispLightmapSamplePositions:  "DISP_LIGHTMAP_SAMPLE_POSITIONS",
	LumpGameLump:                     "GAME_LUMP",
	LumpLeafWaterData:                "LEAFWATERDATA",
	LumpPrimitives:                   "PRIMITIVES",
	LumpPrimVerts:                    "PRIMVERTS",
	LumpPrimIndices:                  "PRIMINDICES",
	LumpPakfile:                      "PAKFILE",
	LumpClipPortalVerts:              "CLIPPORTALVERTS",
	LumpCubemaps:                     "CUBEMAPS",
	LumpTexDataStringData:            "TEXDATA_STRING_DATA",
	LumpTexDataStringTable:           "TEXDATA_STRING_TABLE",
	LumpOverlays:                     "OVERLAYS",
	LumpLeafMinDistToWater:           "LEAFMINDISTTOWATER",
	LumpFaceMacroTextureInfo:         "FACE_MACRO_TEXTURE_INFO",
	LumpDispTris:                     "DISP_TRIS",
	LumpPhysCollideSurface:           "PHYSCOLLIDESURFACE",
	LumpWaterOverlays:                "WATEROVERLAYS",
	LumpLightmapPages:                "LIGHTMAPPAGES",
	LumpLightmapPageInfos:            "LIGHTMAPPAGEINFOS",
	LumpLightingHDR:                  "LIGHTING_HDR",
	LumpWorldLightsHDR:               "WORLDLIGHTS_HDR",
	LumpLeafAmbientLightingHDR:       "LEAF_AMBIENT_LIGHTING_HDR",
	LumpLeafAmbientLighting:          "LEAF_AMBIENT_LIGHTING",
	LumpXZipPakfile:                  "XZIPPAKFILE",
	LumpFacesHDR:                     "FACES_HDR",
	LumpMapFlags:                     "MAP_FLAGS",
	LumpOverlayFades:                 "OVERLAY_FADES",
	LumpOverlaySystemLevels:          "OVERLAY_SYSTEM_LEVELS",
	LumpPhysLevel:                    "PHYSLEVEL",
	LumpDispMultiblend:               "DISP_MULTIBLEND",
}

// lumpAliases maps the game-specific alias names to the canonical LumpID.
// Primary names are not listed here; LumpIDByAlias resolves them from
// lumpNames.
var lumpAliases = map[string]LumpID{
	"PROPCOLLISION":           LumpPortals,
	"PROPHULLS":                LumpClusters,
	"PROPHULLVERTS":            LumpPortalVerts,
	"PROPTRIS":                 LumpClusterPortals,
	"PROP_BLOB":                LumpPhysCollideSurface,
	"LEAF_AMBIENT_INDEX_HDR":   LumpLightmapPages,
	"LEAF_AMBIENT_INDEX":       LumpLightmapPageInfos,
}

// String returns the primary symbolic name, or "UNKNOWN_LUMP" for an
// out-of-range value (which cannot occur via the fixed LumpID enumeration,
// but keeps String total).
func (l LumpID) String() string {
	if l < 0 || int(l) >= NumLumps {
		return "UNKNOWN_LUMP"
	}
	return lumpNames[l]
}

// LumpIDByAlias resolves any primary name or alias (case-sensitive, as
// written in the enumeration) to its canonical LumpID.
func LumpIDByAlias(name string) (LumpID, bool) {
	if id, ok := lumpAliases[name]; ok {
		return id, true
	}
	for i, n := range lumpNames {
		if n == name {
			return LumpID(i), true
		}
	}
	return 0, false
}
