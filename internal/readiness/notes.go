package readiness

import (
	"context"
	"fmt"
)

// MemberAccountCommand is the command to repeat inside each member account.
func MemberAccountCommand(region string) string {
	if region == "" {
		region = "<home-region>"
	}
	return fmt.Sprintf("aws configservice describe-configuration-recorders --region %s", region)
}

func noteGuardrails(_ context.Context, _ *Context, r *Result) {
	r.add(SeverityInfo, "Mandatory guardrails are deployed automatically when the landing zone is set up; no action needed now")
}

func noteMemberAccounts(_ context.Context, actx *Context, r *Result) {
	cmd := MemberAccountCommand(actx.Region)
	r.set("command", cmd)
	r.add(SeverityInfo, "Before enrolling existing accounts, run in every member account: %s", cmd)
	r.add(SeverityInfo, "Delete or stop any AWS Config recorder found there; enrollment fails otherwise")
}
