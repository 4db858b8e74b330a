// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain constants shared across the application:
// user capabilities and event log levels and categories.
package model

// User capabilities. Admin status is an explicit role assigned at user
// creation, never inferred from the row ID.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ValidRole reports whether role is a known capability.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMember
}
