package ir

import "fmt"

// API is the complete description consumed by every emitter.
type API struct {
	// Prefix is the native C naming prefix (e.g. "guestfs_"). Action names
	// must not carry it; emitters add it.
	Prefix  string   `json:"prefix"`
	Actions []Action `json:"actions"`
	Structs []Struct `json:"structs"`
	Events  []Event  `json:"events"`
}

// Action represents one callable API operation.
type Action struct {
	Name         string      `json:"name"`
	Style        Style       `json:"style"`
	ProcNr       int         `json:"proc_nr,omitempty"` // 0 = library-side, >0 = daemon procedure
	NonCAliases  []string    `json:"non_c_aliases,omitempty"`
	FishAlias    []string    `json:"fish_alias,omitempty"`
	ShortDesc    string      `json:"shortdesc"`
	LongDesc     string      `json:"longdesc"`
	DeprecatedBy Deprecation `json:"deprecated_by"`
	Optional     string      `json:"optional,omitempty"` // feature group gating this action
	Tests        []Test      `json:"tests,omitempty"`
	Blocking     bool        `json:"blocking"`
	Cancellable  bool        `json:"cancellable,omitempty"`
	ConfigOnly   bool        `json:"config_only,omitempty"`
	Visibility   Visibility  `json:"visibility"`
	Added        string      `json:"added,omitempty"`

	// LegacyNULTruncation makes emitters pass BufferIn arguments with C
	// string-length semantics, so content is cut at the first NUL byte.
	// Only the deprecated write_file keeps this for wire compatibility.
	LegacyNULTruncation bool `json:"legacy_nul_truncation,omitempty"`
}

// IsDaemon reports whether the action is implemented by the daemon and so
// has a procedure number on the wire.
func (a *Action) IsDaemon() bool {
	return a.ProcNr > 0
}

// IsDeprecated reports whether the action carries any deprecation.
func (a *Action) IsDeprecated() bool {
	return a.DeprecatedBy.Kind != NotDeprecated
}

// Style is the (return-shape, required arguments, optional arguments) triple.
type Style struct {
	Ret     Ret      `json:"ret"`
	Args    []Arg    `json:"args,omitempty"`
	OptArgs []OptArg `json:"optargs,omitempty"`
}

// Visibility controls whether an action is documented and exposed.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityInternal
	VisibilityDebug
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityInternal:
		return "internal"
	case VisibilityDebug:
		return "debug"
	default:
		panic(fmt.Sprintf("unknown visibility: %d", int(v)))
	}
}

// DeprecationKind distinguishes the three deprecation states.
type DeprecationKind int

const (
	NotDeprecated DeprecationKind = iota
	ReplacedBy
	DeprecatedNoReplacement
)

// Deprecation records whether and by what an action is superseded.
type Deprecation struct {
	Kind        DeprecationKind `json:"kind"`
	Replacement string          `json:"replacement,omitempty"` // only for ReplacedBy
}

// Replaced constructs a replaced-by deprecation.
func Replaced(name string) Deprecation {
	return Deprecation{Kind: ReplacedBy, Replacement: name}
}

// ArgKind enumerates required argument shapes.
type ArgKind int

const (
	ArgString ArgKind = iota
	ArgOptString
	ArgStringList
	ArgBool
	ArgInt
	ArgInt64
	ArgBufferIn
	ArgPointer
)

var argKindNames = [...]string{
	ArgString:     "string",
	ArgOptString:  "optstring",
	ArgStringList: "stringlist",
	ArgBool:       "bool",
	ArgInt:        "int",
	ArgInt64:      "int64",
	ArgBufferIn:   "bufferin",
	ArgPointer:    "pointer",
}

func (k ArgKind) String() string {
	if k < 0 || int(k) >= len(argKindNames) {
		panic(fmt.Sprintf("unknown arg kind: %d", int(k)))
	}
	return argKindNames[k]
}

// ParseArgKind is the inverse of ArgKind.String.
func ParseArgKind(s string) (ArgKind, error) {
	for i, n := range argKindNames {
		if n == s {
			return ArgKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown argument kind %q", s)
}

// StringKind refines string-like arguments. It affects documentation and
// CLI parsing only, never the wire shape.
type StringKind int

const (
	PlainString StringKind = iota
	Pathname
	Device
	Mountable
	DevOrPath
	Key
	FileIn
	FileOut
	GUID
	Filename
)

var stringKindNames = [...]string{
	PlainString: "plain",
	Pathname:    "pathname",
	Device:      "device",
	Mountable:   "mountable",
	DevOrPath:   "dev_or_path",
	Key:         "key",
	FileIn:      "filein",
	FileOut:     "fileout",
	GUID:        "guid",
	Filename:    "filename",
}

func (k StringKind) String() string {
	if k < 0 || int(k) >= len(stringKindNames) {
		panic(fmt.Sprintf("unknown string kind: %d", int(k)))
	}
	return stringKindNames[k]
}

// ParseStringKind is the inverse of StringKind.String. The empty string
// means PlainString.
func ParseStringKind(s string) (StringKind, error) {
	if s == "" {
		return PlainString, nil
	}
	for i, n := range stringKindNames {
		if n == s {
			return StringKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown string kind %q", s)
}

// Arg is a required argument.
type Arg struct {
	Kind  ArgKind    `json:"kind"`
	Sub   StringKind `json:"sub,omitempty"`   // ArgString, ArgStringList
	CType string     `json:"ctype,omitempty"` // ArgPointer
	Name  string     `json:"name"`
}

// Str builds a string-like argument with the given subkind.
func Str(sub StringKind, name string) Arg { return Arg{Kind: ArgString, Sub: sub, Name: name} }

// OptStr builds a nullable string argument.
func OptStr(name string) Arg { return Arg{Kind: ArgOptString, Name: name} }

// StrList builds a string-list argument.
func StrList(sub StringKind, name string) Arg { return Arg{Kind: ArgStringList, Sub: sub, Name: name} }

func Bool(name string) Arg     { return Arg{Kind: ArgBool, Name: name} }
func Int(name string) Arg      { return Arg{Kind: ArgInt, Name: name} }
func Int64(name string) Arg    { return Arg{Kind: ArgInt64, Name: name} }
func BufferIn(name string) Arg { return Arg{Kind: ArgBufferIn, Name: name} }

// Pointer builds an opaque pointer argument of the given C type. The daemon
// cannot receive pointers.
func Pointer(ctype, name string) Arg { return Arg{Kind: ArgPointer, CType: ctype, Name: name} }

// OptArgKind enumerates optional argument shapes, a strict subset of ArgKind.
type OptArgKind int

const (
	OptBool OptArgKind = iota
	OptInt
	OptInt64
	OptString
	OptStringList
)

var optArgKindNames = [...]string{
	OptBool:       "bool",
	OptInt:        "int",
	OptInt64:      "int64",
	OptString:     "string",
	OptStringList: "stringlist",
}

func (k OptArgKind) String() string {
	if k < 0 || int(k) >= len(optArgKindNames) {
		panic(fmt.Sprintf("unknown optarg kind: %d", int(k)))
	}
	return optArgKindNames[k]
}

// ParseOptArgKind is the inverse of OptArgKind.String.
func ParseOptArgKind(s string) (OptArgKind, error) {
	for i, n := range optArgKindNames {
		if n == s {
			return OptArgKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown optional argument kind %q", s)
}

// OptArg is an optional argument. Presence travels in the optargs bitmask,
// never in the value encoding.
type OptArg struct {
	Kind OptArgKind `json:"kind"`
	Name string     `json:"name"`
}

// RetKind enumerates return shapes.
type RetKind int

const (
	RetErr RetKind = iota
	RetInt
	RetInt64
	RetBool
	RetConstString
	RetConstOptString
	RetString
	RetStringList
	RetStruct
	RetStructList
	RetHashtable
	RetBufferOut
)

var retKindNames = [...]string{
	RetErr:            "err",
	RetInt:            "int",
	RetInt64:          "int64",
	RetBool:           "bool",
	RetConstString:    "conststring",
	RetConstOptString: "constoptstring",
	RetString:         "string",
	RetStringList:     "stringlist",
	RetStruct:         "struct",
	RetStructList:     "structlist",
	RetHashtable:      "hashtable",
	RetBufferOut:      "bufferout",
}

func (k RetKind) String() string {
	if k < 0 || int(k) >= len(retKindNames) {
		panic(fmt.Sprintf("unknown ret kind: %d", int(k)))
	}
	return retKindNames[k]
}

// ParseRetKind is the inverse of RetKind.String.
func ParseRetKind(s string) (RetKind, error) {
	for i, n := range retKindNames {
		if n == s {
			return RetKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown return kind %q", s)
}

// Ret is a return shape. Struct names the struct for RetStruct and
// RetStructList.
type Ret struct {
	Kind   RetKind `json:"kind"`
	Struct string  `json:"struct,omitempty"`
}

// RetOf builds a non-struct return shape.
func RetOf(k RetKind) Ret { return Ret{Kind: k} }

// RetStructOf builds a single-struct return shape.
func RetStructOf(name string) Ret { return Ret{Kind: RetStruct, Struct: name} }

// RetStructListOf builds a struct-list return shape.
func RetStructListOf(name string) Ret { return Ret{Kind: RetStructList, Struct: name} }

// FieldKind enumerates struct field types.
type FieldKind int

const (
	FieldChar FieldKind = iota
	FieldString
	FieldBuffer
	FieldUUID
	FieldInt32
	FieldUInt32
	FieldInt64
	FieldUInt64
	FieldBytes
	FieldOptPercent
)

var fieldKindNames = [...]string{
	FieldChar:       "char",
	FieldString:     "string",
	FieldBuffer:     "buffer",
	FieldUUID:       "uuid",
	FieldInt32:      "int32",
	FieldUInt32:     "uint32",
	FieldInt64:      "int64",
	FieldUInt64:     "uint64",
	FieldBytes:      "bytes",
	FieldOptPercent: "optpercent",
}

func (k FieldKind) String() string {
	if k < 0 || int(k) >= len(fieldKindNames) {
		panic(fmt.Sprintf("unknown field kind: %d", int(k)))
	}
	return fieldKindNames[k]
}

// ParseFieldKind is the inverse of FieldKind.String.
func ParseFieldKind(s string) (FieldKind, error) {
	for i, n := range fieldKindNames {
		if n == s {
			return FieldKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field kind %q", s)
}

// UUIDLen is the fixed width of a FieldUUID buffer (not NUL-terminated).
const UUIDLen = 32

// Field is one member of a Struct.
type Field struct {
	Name string    `json:"name"`
	Kind FieldKind `json:"kind"`
}

// Struct is a fixed-layout record returned by some actions.
type Struct struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Event is an asynchronous notification kind with a stable bit position.
type Event struct {
	Name string `json:"name"`
	Bit  uint   `json:"bit"`
}

// Mask returns the event's bitmask value.
func (e Event) Mask() uint64 {
	return 1 << e.Bit
}

// AllEvents returns the union of the given events' bitmasks.
func AllEvents(events []Event) uint64 {
	var m uint64
	for _, e := range events {
		m |= e.Mask()
	}
	return m
}
