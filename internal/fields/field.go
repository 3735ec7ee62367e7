// Package fields maps the columns of a raw frame data table onto a fixed set of fields
// and parses every cell into a typed Value.
package fields

import (
	"framedata/lib/textutil"
)

// Field is the canonical identifier of a frame data column.
type Field string

const (
	Move             Field = "move"
	Input            Field = "input"
	Name             Field = "name"
	Startup          Field = "startup"
	Active           Field = "active"
	Recovery         Field = "recovery"
	Total            Field = "total"
	OnHit            Field = "on_hit"
	OnBlock          Field = "on_block"
	OnPunish         Field = "on_punish"
	Damage           Field = "damage"
	ChipDamage       Field = "chip_damage"
	DamageScaling    Field = "damage_scaling"
	Guard            Field = "guard"
	Cancel           Field = "cancel"
	Hitconfirm       Field = "hitconfirm"
	Hitstun          Field = "hitstun"
	Blockstun        Field = "blockstun"
	DriveDamageBlock Field = "drive_damage_block"
	DriveDamageHit   Field = "drive_damage_hit"
	DriveGain        Field = "drive_gain"
	SuperGainHit     Field = "super_gain_hit"
	SuperGainBlock   Field = "super_gain_block"
	ProjectileSpeed  Field = "projectile_speed"
	Invuln           Field = "invuln"
	Armor            Field = "armor"
	Airborne         Field = "airborne"
	JuggleStart      Field = "juggle_start"
	JuggleIncrease   Field = "juggle_increase"
	JuggleLimit      Field = "juggle_limit"
	PerfectParry     Field = "perfect_parry"
	AfterDRHit       Field = "after_dr_hit"
	AfterDRBlock     Field = "after_dr_block"
	DRCancelHit      Field = "dr_cancel_hit"
	DRCancelBlock    Field = "dr_cancel_block"
	Notes            Field = "notes"

	// Unmapped is the catch-all for columns that map to nothing else.
	Unmapped Field = "extra"
)

// All lists every field in the order columns are usually laid out on the wiki.
var All = []Field{
	Move, Input, Name,
	Startup, Active, Recovery, Total,
	OnHit, OnBlock, OnPunish,
	Damage, ChipDamage, DamageScaling, Guard, Cancel, Hitconfirm,
	Hitstun, Blockstun,
	DriveDamageBlock, DriveDamageHit, DriveGain, SuperGainHit, SuperGainBlock,
	ProjectileSpeed, Invuln, Armor, Airborne,
	JuggleStart, JuggleIncrease, JuggleLimit,
	PerfectParry, AfterDRHit, AfterDRBlock, DRCancelHit, DRCancelBlock,
	Notes, Unmapped,
}

var numeric = map[Field]bool{
	Startup:          true,
	Active:           true,
	Recovery:         true,
	Total:            true,
	OnHit:            true,
	OnBlock:          true,
	OnPunish:         true,
	Damage:           true,
	ChipDamage:       true,
	Hitstun:          true,
	Blockstun:        true,
	DriveDamageBlock: true,
	DriveDamageHit:   true,
	DriveGain:        true,
	SuperGainHit:     true,
	SuperGainBlock:   true,
	JuggleStart:      true,
	JuggleIncrease:   true,
	JuggleLimit:      true,
	PerfectParry:     true,
	AfterDRHit:       true,
	AfterDRBlock:     true,
	DRCancelHit:      true,
	DRCancelBlock:    true,
}

// Numeric reports whether the values of f are expected to be frame counts or
// advantages rather than free text.
func (f Field) Numeric() bool {
	return numeric[f]
}

// FrameData reports whether f holds frame data, as opposed to the identifying columns
// and free text. A table holding none of these is not a frame data table.
func (f Field) FrameData() bool {
	switch f {
	case Move, Input, Name, Notes, Unmapped:
		return false
	}
	return true
}

// keyed by textutil.Compact of the header text
var headerAliases = map[string]Field{
	"move":      Move,
	"moves":     Move,
	"attack":    Move,
	"technique": Move,

	"input":    Input,
	"inputs":   Input,
	"command":  Input,
	"notation": Input,
	"numpad":   Input,
	"motion":   Input,

	"name":     Name,
	"movename": Name,

	"startup":       Startup,
	"su":            Startup,
	"start":         Startup,
	"startupframes": Startup,

	"active":       Active,
	"activeframes": Active,

	"recovery":       Recovery,
	"rec":            Recovery,
	"recoveryframes": Recovery,

	"total":       Total,
	"totalframes": Total,

	"onhit":        OnHit,
	"hit":          OnHit,
	"hitadv":       OnHit,
	"hitadvantage": OnHit,
	"oh":           OnHit,

	"onblock":        OnBlock,
	"block":          OnBlock,
	"blockadv":       OnBlock,
	"blockadvantage": OnBlock,
	"ob":             OnBlock,
	"guardadv":       OnBlock,
	"guardadvantage": OnBlock,

	"onpunish":        OnPunish,
	"punish":          OnPunish,
	"punishadv":       OnPunish,
	"punishadvantage": OnPunish,
	"punishcounter":   OnPunish,
	"onpunishcounter": OnPunish,
	"pc":              OnPunish,

	"damage": Damage,
	"dmg":    Damage,

	"chip":       ChipDamage,
	"chipdamage": ChipDamage,
	"chipdmg":    ChipDamage,

	"scaling":       DamageScaling,
	"damagescaling": DamageScaling,

	"guard":     Guard,
	"blocktype": Guard,
	"hitlevel":  Guard,
	"level":     Guard,

	"cancel":     Cancel,
	"cancels":    Cancel,
	"cancelable": Cancel,

	"hitconfirm":       Hitconfirm,
	"hitconfirmwindow": Hitconfirm,
	"confirmwindow":    Hitconfirm,

	"hitstun":   Hitstun,
	"blockstun": Blockstun,
	"guardstun": Blockstun,

	"drivedamageblock": DriveDamageBlock,
	"drivedmgblock":    DriveDamageBlock,
	"drivedamagehit":   DriveDamageHit,
	"drivedmghit":      DriveDamageHit,
	"drivegain":        DriveGain,
	"drivegainhit":     DriveGain,

	"supergainhit":   SuperGainHit,
	"supergain":      SuperGainHit,
	"supergainblock": SuperGainBlock,

	"projectilespeed": ProjectileSpeed,
	"projspeed":       ProjectileSpeed,

	"invuln":          Invuln,
	"invulnerability": Invuln,
	"invincibility":   Invuln,

	"armor":  Armor,
	"armour": Armor,

	"airborne": Airborne,

	"jugglestart":    JuggleStart,
	"juggleincrease": JuggleIncrease,
	"jugglelimit":    JuggleLimit,

	"perfectparry":          PerfectParry,
	"perfectparryadvantage": PerfectParry,
	"ppadv":                 PerfectParry,

	"afterdrhit":              AfterDRHit,
	"afterdrivereversalhit":   AfterDRHit,
	"afterdrblock":            AfterDRBlock,
	"afterdrivereversalblock": AfterDRBlock,
	"drcancelhit":             DRCancelHit,
	"drcancelonhit":           DRCancelHit,
	"drcancelblock":           DRCancelBlock,
	"drcancelonblock":         DRCancelBlock,

	"notes":       Notes,
	"note":        Notes,
	"description": Notes,
	"comments":    Notes,
	"properties":  Notes,
}

// Lookup maps the text of a column header onto its field. The match ignores case,
// whitespace and punctuation. Unknown headers map to Unmapped and ok is false.
func Lookup(header string) (field Field, ok bool) {
	field, ok = headerAliases[textutil.Compact(header)]
	if !ok {
		return Unmapped, false
	}
	return field, true
}
