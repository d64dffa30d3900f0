// internal/talon/layout.go

// Package talon reads the legacy talon control system's shared memory
// segment. The segment is a C struct written in place by an external
// process; this package carries the per-telescope offset tables and a
// decoder that turns one read pass into a typed snapshot.
//
// Offsets are recovered from the writer's compiled struct layout with
// offsetof() and must never be patched in place: a new writer build
// gets a new variant.
package talon

import (
	"fmt"
	"sort"
)

// Key is the SysV shared memory key of the talon status segment
// (TELSTATSHMKEY). Both telescope generations use the same key.
const Key = 0x4e56361a

// Variant identifies a telescope hardware generation. The two known
// generations were built from different revisions of the writer's
// status struct, so their offsets differ materially.
type Variant int

const (
	OneMetre Variant = iota
	SuperWASP
)

func (v Variant) String() string {
	switch v {
	case OneMetre:
		return "W1m"
	case SuperWASP:
		return "SuperWASP"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant maps the telescope name used in configuration files to
// its Variant.
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "W1m":
		return OneMetre, nil
	case "SuperWASP":
		return SuperWASP, nil
	}
	return 0, fmt.Errorf("talon: unknown telescope %q", name)
}

// Kind is the wire type of a field. The writer runs on little-endian
// x86, so all multi-byte values are little-endian.
type Kind uint8

const (
	Double Kind = iota // 8-byte IEEE-754
	Int32              // 4-byte two's complement
	Uint16             // 2-byte unsigned
)

// Width returns the number of bytes a value of kind k occupies.
func (k Kind) Width() int {
	switch k {
	case Double:
		return 8
	case Int32:
		return 4
	case Uint16:
		return 2
	}
	return 0
}

func (k Kind) String() string {
	switch k {
	case Double:
		return "double"
	case Int32:
		return "int32"
	case Uint16:
		return "uint16"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Field names one decodable value in the segment.
type Field string

const (
	FieldPID         Field = "pid"
	FieldMJD         Field = "mjd"
	FieldLST         Field = "lst"
	FieldRAJ2000     Field = "ra_j2000"
	FieldDecJ2000    Field = "dec_j2000"
	FieldHAApparent  Field = "ha_apparent"
	FieldDecApparent Field = "dec_apparent"
	FieldAlt         Field = "alt"
	FieldAz          Field = "az"
	FieldLatitude    Field = "latitude"
	FieldLongitude   Field = "longitude"
	FieldElevation   Field = "elevation"
	FieldTemperature Field = "temperature"
	FieldPressure    Field = "pressure"
	FieldTelState    Field = "tel_state"
	FieldTelStateIdx Field = "tel_state_idx"
	FieldRoofState   Field = "roof_state"
	FieldCoverState  Field = "cover_state"
	FieldHeartbeat   Field = "heartbeat_remaining"
	FieldRAFlags     Field = "ra_flags"
	FieldRAPosLim    Field = "ra_pos_lim"
	FieldRANegLim    Field = "ra_neg_lim"
	FieldDecFlags    Field = "dec_flags"
	FieldDecPosLim   Field = "dec_pos_lim"
	FieldDecNegLim   Field = "dec_neg_lim"
	FieldFocusFlags  Field = "focus_flags"
	FieldFocusStep   Field = "focus_step"
	FieldFocusDF     Field = "focus_df"
	FieldFocusCPos   Field = "focus_cpos"
	FieldFocusPosLim Field = "focus_pos_lim"
	FieldFocusNegLim Field = "focus_neg_lim"
)

// Offsets of MotorInfo members relative to an axis base. The axis
// array is minfo[HMOT DMOT RMOT OMOT ...]; the flags live in a packed
// bitfield one byte into the struct and are read as a ushort.
const (
	motorStride = 120

	motorFlags  = 1
	motorStep   = 4
	motorPosLim = 56
	motorNegLim = 64
	motorDF     = 80
	motorCPos   = 96
)

// Axis bases per variant: minfo offset plus axis index times stride.
// The field rotator axis (index 2) is unused on both telescopes.
const (
	onemetreRABase    = 256
	onemetreDecBase   = onemetreRABase + motorStride
	onemetreFocusBase = onemetreRABase + 3*motorStride

	superwaspRABase    = 248
	superwaspDecBase   = superwaspRABase + motorStride
	superwaspFocusBase = superwaspRABase + 3*motorStride
)

type entry struct {
	offset int64
	kind   Kind
}

// The W1m writer build. Angles are radians, elevation is earth radii.
var onemetreFields = map[Field]entry{
	FieldMJD:         {0, Double},
	FieldLatitude:    {8, Double},
	FieldLongitude:   {16, Double},
	FieldElevation:   {48, Double},
	FieldRAJ2000:     {88, Double},
	FieldDecJ2000:    {96, Double},
	FieldHAApparent:  {112, Double},
	FieldDecApparent: {120, Double},
	FieldAlt:         {128, Double},
	FieldAz:          {136, Double},
	FieldLST:         {152, Double},
	FieldRAFlags:     {onemetreRABase + motorFlags, Uint16},
	FieldRAPosLim:    {onemetreRABase + motorPosLim, Double},
	FieldRANegLim:    {onemetreRABase + motorNegLim, Double},
	FieldDecFlags:    {onemetreDecBase + motorFlags, Uint16},
	FieldDecPosLim:   {onemetreDecBase + motorPosLim, Double},
	FieldDecNegLim:   {onemetreDecBase + motorNegLim, Double},
	FieldFocusFlags:  {onemetreFocusBase + motorFlags, Uint16},
	FieldFocusStep:   {onemetreFocusBase + motorStep, Int32},
	FieldFocusDF:     {onemetreFocusBase + motorDF, Double},
	FieldFocusCPos:   {onemetreFocusBase + motorCPos, Double},
	FieldTelState:    {808, Int32},
	FieldTelStateIdx: {812, Int32},
	FieldRoofState:   {820, Int32},
	FieldCoverState:  {824, Int32},
	FieldHeartbeat:   {836, Int32},
	FieldPID:         {840, Int32},
}

// The SuperWASP writer build exports a smaller field set: no motor
// flags, no apparent place, and no dome heartbeat.
var superwaspFields = map[Field]entry{
	FieldMJD:         {0, Double},
	FieldLatitude:    {8, Double},
	FieldLongitude:   {16, Double},
	FieldTemperature: {32, Double},
	FieldPressure:    {40, Double},
	FieldElevation:   {48, Double},
	FieldRAJ2000:     {88, Double},
	FieldDecJ2000:    {96, Double},
	FieldRAPosLim:    {superwaspRABase + motorPosLim, Double},
	FieldRANegLim:    {superwaspRABase + motorNegLim, Double},
	FieldDecPosLim:   {superwaspDecBase + motorPosLim, Double},
	FieldDecNegLim:   {superwaspDecBase + motorNegLim, Double},
	FieldFocusStep:   {superwaspFocusBase + motorStep, Int32},
	FieldFocusPosLim: {superwaspFocusBase + motorPosLim, Double},
	FieldFocusNegLim: {superwaspFocusBase + motorNegLim, Double},
	FieldFocusDF:     {superwaspFocusBase + motorDF, Double},
	FieldFocusCPos:   {superwaspFocusBase + motorCPos, Double},
	FieldTelState:    {920, Int32},
	FieldCoverState:  {976, Int32},
}

// Layout is the compiled offset table for one variant. Immutable after
// construction.
type Layout struct {
	variant Variant
	fields  map[Field]entry
	ordered []Field
	minSize int64
}

var layouts = map[Variant]*Layout{
	OneMetre:  compile(OneMetre, onemetreFields),
	SuperWASP: compile(SuperWASP, superwaspFields),
}

func compile(v Variant, fields map[Field]entry) *Layout {
	l := &Layout{variant: v, fields: fields}
	for f, e := range fields {
		l.ordered = append(l.ordered, f)
		if end := e.offset + int64(e.kind.Width()); end > l.minSize {
			l.minSize = end
		}
	}
	// Ascending offset order, so a truncated segment fails on the
	// lowest affected field.
	sort.Slice(l.ordered, func(i, j int) bool {
		return fields[l.ordered[i]].offset < fields[l.ordered[j]].offset
	})
	return l
}

// LayoutFor returns the offset table for v. An unsupported variant is
// a configuration error caught at startup, never at read time.
func LayoutFor(v Variant) (*Layout, error) {
	l, ok := layouts[v]
	if !ok {
		return nil, fmt.Errorf("talon: unsupported telescope variant %d", int(v))
	}
	return l, nil
}

// Variant returns the variant the table was compiled for.
func (l *Layout) Variant() Variant { return l.variant }

// Lookup returns the offset and kind of f.
func (l *Layout) Lookup(f Field) (offset int64, kind Kind, ok bool) {
	e, ok := l.fields[f]
	return e.offset, e.kind, ok
}

// Has reports whether this variant's writer exports f.
func (l *Layout) Has(f Field) bool {
	_, ok := l.fields[f]
	return ok
}

// Fields returns the variant's exported fields in ascending offset
// order.
func (l *Layout) Fields() []Field {
	out := make([]Field, len(l.ordered))
	copy(out, l.ordered)
	return out
}

// MinSize returns the smallest segment size, in bytes, that covers
// every field in the table.
func (l *Layout) MinSize() int64 { return l.minSize }
