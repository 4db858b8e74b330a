// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Event levels for the audit log.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories.
const (
	EventCategoryAuth    = "auth"
	EventCategoryPost    = "post"
	EventCategoryComment = "comment"
	EventCategoryContact = "contact"
	EventCategoryUser    = "user"
	EventCategorySystem  = "system"
)
