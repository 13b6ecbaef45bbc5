package config

// SourceFileExt is the extension of recognized source files.
const SourceFileExt = ".py"

// PackageInitFile is the file that marks a directory as a package and is
// processed as the package's own module.
const PackageInitFile = "__init__.py"

// TypingModule is the module hosting the recognized generic type
// constructors.
const TypingModule = "typing"

// Role is one generic-constructor role, recognized independently of its
// local spelling.
type Role string

const (
	RoleAny       Role = "Any"
	RoleDict      Role = "Dict"
	RoleList      Role = "List"
	RoleLiteral   Role = "Literal"
	RoleOptional  Role = "Optional"
	RoleTypedDict Role = "TypedDict"
	RoleUnion     Role = "Union"
)

// SubscriptRoles are the roles valid as subscript heads (C[...]), in the
// order diagnostics list them.
var SubscriptRoles = []Role{RoleDict, RoleList, RoleLiteral, RoleOptional, RoleUnion}

// AllRoles are every recognized role, subscriptable or not.
var AllRoles = []Role{RoleAny, RoleDict, RoleList, RoleLiteral, RoleOptional, RoleTypedDict, RoleUnion}
