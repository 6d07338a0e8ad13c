package commandmeta

import "strings"

type OutputPolicy uint8

const (
	OutputPolicyStructured OutputPolicy = iota
	OutputPolicyTextOnly
	OutputPolicyYAMLDefaultTextOrYAML
)

// EmitsExecutionStatusPath lists the commands that change state, locally or
// remotely, and report [OK] or [ERROR] on stderr.
func EmitsExecutionStatusPath(path string) bool {
	switch strings.TrimSpace(path) {
	case "bitgo config add",
		"bitgo config update",
		"bitgo config delete",
		"bitgo config rename",
		"bitgo config use",
		"bitgo wallet update",
		"bitgo wallet generate",
		"bitgo address create",
		"bitgo key create",
		"bitgo tx send",
		"bitgo tx sendcoins",
		"bitgo tx sendmany":
		return true
	default:
		return false
	}
}

func OutputPolicyForPath(path string) OutputPolicy {
	switch strings.TrimSpace(path) {
	case "bitgo config show":
		return OutputPolicyYAMLDefaultTextOrYAML
	case "bitgo completion bash",
		"bitgo completion zsh",
		"bitgo completion fish",
		"bitgo completion powershell":
		return OutputPolicyTextOnly
	default:
		return OutputPolicyStructured
	}
}
