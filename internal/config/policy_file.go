package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// policyFile is the YAML layout of a policy file. Pointer fields distinguish
// "not set" from a zero value so absent keys keep the defaults.
//
//	organization: acme
//	excluded_accounts: [release-bot]
//	max_users_to_remove: 3
//	safe_mode: true
//	dry_run: false
type policyFile struct {
	Organization     *string  `yaml:"organization"`
	ExcludedAccounts []string `yaml:"excluded_accounts"`
	MaxUsersToRemove *int     `yaml:"max_users_to_remove"`
	SafeMode         *bool    `yaml:"safe_mode"`
	DryRun           *bool    `yaml:"dry_run"`
}

// ApplyPolicyFile reads a YAML policy file and overlays its values on cfg.
// Credentials and endpoints are not accepted from the file.
func ApplyPolicyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read policy file: %w", err)
	}

	var pf policyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parse policy file %s: %w", path, err)
	}

	if pf.Organization != nil {
		cfg.Organization = *pf.Organization
	}
	if pf.ExcludedAccounts != nil {
		cfg.ExcludedAccounts = pf.ExcludedAccounts
	}
	if pf.MaxUsersToRemove != nil {
		cfg.MaxUsersToRemove = *pf.MaxUsersToRemove
	}
	if pf.SafeMode != nil {
		cfg.SafeMode = *pf.SafeMode
	}
	if pf.DryRun != nil {
		cfg.DryRun = *pf.DryRun
	}
	return nil
}
