package template

import (
	"fmt"

	"autovideo/internal/binpatch"
	"autovideo/internal/identifier"
	"autovideo/internal/textutil"
	"autovideo/internal/timing"
)

// Role identifies which display surface a mesh template backs.
type Role string

const (
	RoleTelevision Role = "Television"
	RoleProjector  Role = "Projector"
	RoleDriveIn    Role = "DriveIn"
)

// PluginCapacity is the number of video record slots reserved in the
// bundled plugin templates.
const PluginCapacity = 10

// PluginFileName returns the output file name of the primary plugin for a
// mod. File-hostile characters in the mod name are folded away.
func PluginFileName(modName string) string {
	return "VotW_" + textutil.SanitizeFileName(modName) + ".esp"
}

// DriveInFileName returns the output file name of the compact plugin for a
// mod.
func DriveInFileName(modName string) string {
	return "VotW_" + textutil.SanitizeFileName(modName) + "_DriveIn.esp"
}

// AudioNameLength is the byte width of the sound asset placeholder. Padded
// audio names fill it exactly, so the patched sound path always matches the
// extracted wav file.
const AudioNameLength = 14

// MeshRoles returns the mesh roles written for a video occupying gridCount
// grids. The drive-in surface only exists in the compact family.
func MeshRoles(gridCount int) []Role {
	roles := []Role{RoleTelevision, RoleProjector}
	if gridCount <= timing.CompactGrids {
		roles = append(roles, RoleDriveIn)
	}
	return roles
}

// Identifiers carries the encoded names stamped into one video's buffers.
type Identifiers struct {
	Mod   identifier.Identity
	Video identifier.Identity
	Audio string
}

// meaning selects which encoding replaces a placeholder token.
type meaning int

const (
	meaningModToken meaning = iota
	meaningModLeading
	meaningModTrailing
	meaningVideoToken
	meaningVideoTrailing
	meaningAudioName
)

// binding pairs one placeholder token with its meaning and match scope.
// The same literal can carry a different meaning in another template kind,
// so the layout is spelled out per kind instead of relying on the literal.
type binding struct {
	token     string
	meaning   meaning
	firstOnly bool
}

// pluginBindings is the placeholder layout shared by both plugin templates.
// Tokens absent from a template are skipped without error.
var pluginBindings = []binding{
	{token: "AUTOCIDENT", meaning: meaningModToken},
	{token: "AUTOVIDENT", meaning: meaningVideoToken, firstOnly: true},
	{token: "AUTOSIDENT", meaning: meaningVideoToken, firstOnly: true},
	{token: "AUTOPIDENT", meaning: meaningVideoToken, firstOnly: true},
	{token: "AUTOTIDENT", meaning: meaningModTrailing},
	{token: "AUTOMIDENT", meaning: meaningModLeading},
	{token: "ZAUTONIDEN", meaning: meaningVideoTrailing, firstOnly: true},
	{token: "AUTOIDENTSOUND", meaning: meaningAudioName, firstOnly: true},
}

// meshBindings is the placeholder layout of the mesh templates. AUTOCIDENT
// and AUTOMIDENT mean the opposite of what they mean in plugin templates.
var meshBindings = []binding{
	{token: "AUTOCIDENT", meaning: meaningVideoToken},
	{token: "AUTOMIDENT", meaning: meaningModToken},
}

func (ids Identifiers) resolve(m meaning) string {
	switch m {
	case meaningModToken:
		return ids.Mod.Token
	case meaningModLeading:
		return ids.Mod.LeadingSpaced
	case meaningModTrailing:
		return ids.Mod.TrailingSpaced
	case meaningVideoToken:
		return ids.Video.Token
	case meaningVideoTrailing:
		return ids.Video.TrailingSpaced
	default:
		return ids.Audio
	}
}

func applyBindings(buf []byte, bindings []binding, ids Identifiers) error {
	for _, b := range bindings {
		value := ids.resolve(b.meaning)
		var err error
		if b.firstOnly {
			_, err = binpatch.ReplaceFirst(buf, b.token, value)
		} else {
			_, err = binpatch.ReplaceAll(buf, b.token, value)
		}
		if err != nil {
			return fmt.Errorf("token %s: %w", b.token, err)
		}
	}
	return nil
}

// ApplyPlugin stamps one video's identifiers into a plugin buffer.
// First-match tokens consume one record slot per call, so repeated calls
// fill consecutive slots.
func ApplyPlugin(buf []byte, ids Identifiers) error {
	return applyBindings(buf, pluginBindings, ids)
}

// ApplyMeshIdentifiers stamps identifiers into a mesh buffer.
func ApplyMeshIdentifiers(buf []byte, ids Identifiers) error {
	return applyBindings(buf, meshBindings, ids)
}

// ApplyMeshTiming patches the timing sentinels of all 24 slots plus the
// global speed multiplier. Slots missing from the compact family produce
// no matches, so no stale sentinel survives in any family.
func ApplyMeshTiming(buf []byte, gridCount int, stopTime float32, frameRate int) {
	for slot := 1; slot <= timing.MaxGrids; slot++ {
		controller := timing.Controller(slot, gridCount, stopTime)
		textKey := timing.TextKey(controller, frameRate)
		binpatch.PatchFloat32(buf, timing.TextKeySentinel(slot), textKey)
		binpatch.PatchFloat32(buf, timing.ControllerSentinel(slot), controller)
	}
	binpatch.PatchFloat32(buf, timing.SpeedSentinel, timing.Speed(frameRate))
}

// FreeSlots reports how many video record slots remain unclaimed in a
// plugin buffer.
func FreeSlots(buf []byte) int {
	return binpatch.Count(buf, "AUTOVIDENT")
}
