// Package configs manages the per-user zeroenv configuration stored under
// the OS config directory: a generated install UUID for audit entries and
// optional preferences such as the default security tier.
package configs
