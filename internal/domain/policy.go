package domain

// PolicyConfig is the enforcement policy for one run. It is built once at
// startup and passed by value; nothing mutates it afterwards.
type PolicyConfig struct {
	Organization     string
	ExcludedAccounts []string
	MaxUsersToRemove int
	SafeMode         bool // cap removals at MaxUsersToRemove
	DryRun           bool // report only, never remove
}
