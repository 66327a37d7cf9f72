package commands

// Version is the release of minish, set at build time with
// -ldflags "-X github.com/josephlewis42/minish/commands.Version=...".
var Version = "0.1.0"

// VersionString is the output of the version builtin.
func VersionString() string {
	return "minish v" + Version
}
