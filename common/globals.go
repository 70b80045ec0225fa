package common

// SableVersion is the current Sable toolchain version as a string.
const SableVersion string = "0.1.0"

// SableModuleFileName is the name for Sable module manifest files.
const SableModuleFileName string = "sable-mod.toml"

// SableFileExt is the file extension for a Sable source file.
const SableFileExt string = ".sbl"

// BuiltinModName is the name of the implicit builtin module whose namespace
// acts as the universal fallback for name lookups.
const BuiltinModName string = "builtins"
