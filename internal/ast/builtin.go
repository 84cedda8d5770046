package ast

import (
	"foxc/internal/report"
	"foxc/internal/types"
)

// BuiltinKind enumerates the fixed builtin surface of spec 6.4. BCGen
// (internal/bcgen) switches on these to select the right runtime call when
// lowering builtin-member expressions and synthesized operations (string
// concatenation, array literals, subscripting).
type BuiltinKind int

const (
	BuiltinIntToString BuiltinKind = iota
	BuiltinDoubleToString
	BuiltinBoolToString
	BuiltinCharToString
	BuiltinStrConcat
	BuiltinCharConcat
	BuiltinGetChar
	BuiltinArrAppend
	BuiltinArrPop
	BuiltinArrSize
	BuiltinArrGet
	BuiltinArrSet
	BuiltinArrFront
	BuiltinArrBack
	BuiltinArrReset
	BuiltinStrNumBytes
	BuiltinStrLength
)

func (k BuiltinKind) String() string {
	return builtinNames[k]
}

var builtinNames = map[BuiltinKind]string{
	BuiltinIntToString:    "intToString",
	BuiltinDoubleToString: "doubleToString",
	BuiltinBoolToString:   "boolToString",
	BuiltinCharToString:   "charToString",
	BuiltinStrConcat:      "strConcat",
	BuiltinCharConcat:     "charConcat",
	BuiltinGetChar:        "getChar",
	BuiltinArrAppend:      "arrAppend",
	BuiltinArrPop:         "arrPop",
	BuiltinArrSize:        "arrSize",
	BuiltinArrGet:         "arrGet",
	BuiltinArrSet:         "arrSet",
	BuiltinArrFront:       "arrFront",
	BuiltinArrBack:        "arrBack",
	BuiltinArrReset:       "arrReset",
	BuiltinStrNumBytes:    "strNumBytes",
	BuiltinStrLength:      "strLength",
}

// BuiltinFuncDecl is the synthetic declaration (spec 3.5) backing one
// builtin: it is name-resolved through Context's builtin table rather than
// through ordinary scope lookup (spec 4.4.1: "builtin table" is the last
// link in the scope chain).
type BuiltinFuncDecl struct {
	DeclBase
	Kind BuiltinKind
	Name *Ident
	Sig  *types.Function
}

func (d *BuiltinFuncDecl) declNode() {}

// registerBuiltins populates ctx's builtin table with every entry of
// spec 6.4's surface, each typed per the signature its BCGen lowering
// requires.
func (ctx *Context) registerBuiltins() {
	str := types.String
	ch := types.Char
	i := types.Int
	b := types.Bool
	dbl := types.Double
	void := types.Void

	anyArray := ctx.InternArray(types.Error) // element type is checked structurally at call sites, not via this signature

	entries := []struct {
		name string
		kind BuiltinKind
		sig  *types.Function
	}{
		{"intToString", BuiltinIntToString, &types.Function{Params: []types.Type{i}, Ret: str}},
		{"doubleToString", BuiltinDoubleToString, &types.Function{Params: []types.Type{dbl}, Ret: str}},
		{"boolToString", BuiltinBoolToString, &types.Function{Params: []types.Type{b}, Ret: str}},
		{"charToString", BuiltinCharToString, &types.Function{Params: []types.Type{ch}, Ret: str}},
		{"strConcat", BuiltinStrConcat, &types.Function{Params: []types.Type{str, str}, Ret: str}},
		{"charConcat", BuiltinCharConcat, &types.Function{Params: []types.Type{ch, ch}, Ret: str}},
		{"getChar", BuiltinGetChar, &types.Function{Params: []types.Type{str, i}, Ret: ch}},
		{"arrAppend", BuiltinArrAppend, &types.Function{Params: []types.Type{anyArray, types.Error}, Ret: void}},
		{"arrPop", BuiltinArrPop, &types.Function{Params: []types.Type{anyArray}, Ret: void}},
		{"arrSize", BuiltinArrSize, &types.Function{Params: []types.Type{anyArray}, Ret: i}},
		{"arrGet", BuiltinArrGet, &types.Function{Params: []types.Type{anyArray, i}, Ret: types.Error}},
		{"arrSet", BuiltinArrSet, &types.Function{Params: []types.Type{anyArray, i, types.Error}, Ret: types.Error}},
		{"arrFront", BuiltinArrFront, &types.Function{Params: []types.Type{anyArray}, Ret: types.Error}},
		{"arrBack", BuiltinArrBack, &types.Function{Params: []types.Type{anyArray}, Ret: types.Error}},
		{"arrReset", BuiltinArrReset, &types.Function{Params: []types.Type{anyArray}, Ret: void}},
		{"strNumBytes", BuiltinStrNumBytes, &types.Function{Params: []types.Type{str}, Ret: i}},
		{"strLength", BuiltinStrLength, &types.Function{Params: []types.Type{str}, Ret: i}},
	}

	ctx.builtins = make(map[*Ident]*BuiltinFuncDecl, len(entries))
	for _, e := range entries {
		id := ctx.Intern(e.name)
		decl := &BuiltinFuncDecl{Kind: e.kind, Name: id, Sig: e.sig}
		ctx.builtins[id] = decl
		ctx.builtinList = append(ctx.builtinList, decl)
	}
}

// LookupBuiltin returns the BuiltinFuncDecl registered under id, the last
// link of the scope chain (spec 4.4.1).
func (ctx *Context) LookupBuiltin(id *Ident) (*BuiltinFuncDecl, bool) {
	d, ok := ctx.builtins[id]
	return d, ok
}

// BuiltinByKind returns the registered BuiltinFuncDecl for kind, used by
// BCGen to synthesize a LoadBuiltinFunc/Call sequence for operations the
// language desugars internally (string concatenation, subscripting, array
// literal construction — spec 4.5.3).
func (ctx *Context) BuiltinByKind(kind BuiltinKind) *BuiltinFuncDecl {
	for _, d := range ctx.builtinList {
		if d.Kind == kind {
			return d
		}
	}
	report.PanicICE("no builtin registered for kind %v", kind)
	return nil
}

// BuiltinMemberKind identifies one of the fixed member operations on array
// or string values (GLOSSARY), e.g. `.append`, `.size`, `.length`.
type BuiltinMemberKind int

const (
	MemberStrLength BuiltinMemberKind = iota
	MemberStrNumBytes

	MemberArrAppend
	MemberArrPop
	MemberArrSize
	MemberArrFront
	MemberArrBack
	MemberArrReset
)

var stringMembers = map[string]BuiltinMemberKind{
	"length":   MemberStrLength,
	"numBytes": MemberStrNumBytes,
}

var arrayMembers = map[string]BuiltinMemberKind{
	"append": MemberArrAppend,
	"pop":    MemberArrPop,
	"size":   MemberArrSize,
	"front":  MemberArrFront,
	"back":   MemberArrBack,
	"reset":  MemberArrReset,
}

// LookupStringMember resolves a member name against a String base's fixed
// member set (spec 4.5.3's builtin-member lowering; original_source's
// BuiltinTypeMembers.def string half).
func LookupStringMember(name string) (BuiltinMemberKind, bool) {
	k, ok := stringMembers[name]
	return k, ok
}

// LookupArrayMember resolves a member name against an Array base's fixed
// member set.
func LookupArrayMember(name string) (BuiltinMemberKind, bool) {
	k, ok := arrayMembers[name]
	return k, ok
}

// BuiltinKindForMember maps a resolved member kind to the BuiltinKind that
// implements it, used when BCGen lowers a BuiltinMemberRefExpr call.
func BuiltinKindForMember(m BuiltinMemberKind) BuiltinKind {
	switch m {
	case MemberStrLength:
		return BuiltinStrLength
	case MemberStrNumBytes:
		return BuiltinStrNumBytes
	case MemberArrAppend:
		return BuiltinArrAppend
	case MemberArrPop:
		return BuiltinArrPop
	case MemberArrSize:
		return BuiltinArrSize
	case MemberArrFront:
		return BuiltinArrFront
	case MemberArrBack:
		return BuiltinArrBack
	case MemberArrReset:
		return BuiltinArrReset
	default:
		report.PanicICE("unhandled builtin member kind %v", m)
		return 0
	}
}
