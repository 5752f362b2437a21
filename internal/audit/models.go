// Package audit records who did what on the admin surface: sign-in attempts
// and master-list mutations, with enough request context to answer "from
// where" later.
package audit

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
)

// Action identifies an audited operation.
type Action string

const (
	ActionLoginSucceeded Action = "login_succeeded"
	ActionLoginFailed    Action = "login_failed"
	ActionMasterCreated  Action = "master_created"
	ActionMasterUpdated  Action = "master_updated"
	ActionMasterDeleted  Action = "master_deleted"
)

// Event is a single audit trail entry.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Actor     string    `json:"actor"`
	Action    Action    `json:"action"`
	Category  string    `json:"category,omitempty"`
	TargetID  string    `json:"targetId,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Device    string    `json:"device,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DeviceSummary renders a short human-readable device description from a
// User-Agent header, e.g. "Chrome on Mac OS X".
func DeviceSummary(userAgentHeader string) string {
	if strings.TrimSpace(userAgentHeader) == "" {
		return "unknown device"
	}
	ua := useragent.New(userAgentHeader)
	name, _ := ua.Browser()
	os := ua.OSInfo().Name
	switch {
	case name != "" && os != "":
		return name + " on " + os
	case name != "":
		return name
	case os != "":
		return os
	default:
		return "unknown device"
	}
}
