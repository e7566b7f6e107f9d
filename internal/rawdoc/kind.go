package rawdoc

import "strings"

// Kind is the registry discriminant of a documentation entry. It is derived
// from the declaring command and the shape of the entry name.
type Kind string

const (
	KindClass                 Kind = "class"
	KindConcept               Kind = "concept"
	KindEnum                  Kind = "enum"
	KindAdaption              Kind = "adaption"
	KindGlobalTypedef         Kind = "global_typedef"
	KindMemberTypedef         Kind = "member_typedef"
	KindGroupedTypedef        Kind = "grouped_typedef"
	KindGlobalFunction        Kind = "global_function"
	KindMemberFunction        Kind = "member_function"
	KindInterfaceFunction     Kind = "interface_function"
	KindGlobalMetafunction    Kind = "global_metafunction"
	KindInterfaceMetafunction Kind = "interface_metafunction"
	KindMacro                 Kind = "macro"
	KindGroupedMacro          Kind = "grouped_macro"
	KindTag                   Kind = "tag"
	KindGroupedTag            Kind = "grouped_tag"
	KindVariable              Kind = "variable"
	KindMemberVariable        Kind = "member_variable"
	KindGroupedVariable       Kind = "grouped_variable"
	KindPage                  Kind = "page"
	KindGroup                 Kind = "defgroup"
	KindUnknown               Kind = "unknown"
)

// Command names the @-command that declared a raw entry.
type Command string

const (
	CmdClass    Command = "class"
	CmdConcept  Command = "concept"
	CmdEnum     Command = "enum"
	CmdAdaption Command = "adaption"
	CmdTypedef  Command = "typedef"
	CmdFunction Command = "fn"
	CmdMetafn   Command = "mfn"
	CmdMacro    Command = "macro"
	CmdTag      Command = "tag"
	CmdVariable Command = "var"
	CmdPage     Command = "page"
	CmdDefgroup Command = "defgroup"
)

// DeriveKind maps a command and entry name to its kind. A '#' in the name
// marks a grouped variant, a "::" a member variant.
func DeriveKind(cmd Command, name string) Kind {
	grouped := strings.Contains(name, "#")
	member := strings.Contains(name, "::")
	switch cmd {
	case CmdClass:
		return KindClass
	case CmdConcept:
		return KindConcept
	case CmdEnum:
		return KindEnum
	case CmdAdaption:
		return KindAdaption
	case CmdPage:
		return KindPage
	case CmdDefgroup:
		return KindGroup
	case CmdTypedef:
		switch {
		case grouped:
			return KindGroupedTypedef
		case member:
			return KindMemberTypedef
		}
		return KindGlobalTypedef
	case CmdFunction:
		switch {
		case grouped:
			return KindInterfaceFunction
		case member:
			return KindMemberFunction
		}
		return KindGlobalFunction
	case CmdMetafn:
		if grouped {
			return KindInterfaceMetafunction
		}
		return KindGlobalMetafunction
	case CmdMacro:
		if grouped {
			return KindGroupedMacro
		}
		return KindMacro
	case CmdTag:
		if grouped {
			return KindGroupedTag
		}
		return KindTag
	case CmdVariable:
		switch {
		case grouped:
			return KindGroupedVariable
		case member:
			return KindMemberVariable
		}
		return KindVariable
	}
	return KindUnknown
}

// SplitSecondLevel splits a second-level entry name into owner and member.
// Names with more than one "::" and a space split on the first space, then
// '#' is tried, then the last "::". ok is false for top-level names.
func SplitSecondLevel(name string) (owner, member string, ok bool) {
	switch {
	case strings.Count(name, "::") > 1 && strings.Contains(name, " "):
		owner, member, _ = strings.Cut(name, " ")
		return owner, member, true
	case strings.Contains(name, "#"):
		owner, member, _ = strings.Cut(name, "#")
		return owner, member, true
	case strings.Contains(name, "::"):
		i := strings.LastIndex(name, "::")
		return name[:i], name[i+2:], true
	}
	return "", name, false
}
