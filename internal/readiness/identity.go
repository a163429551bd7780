package readiness

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// PrincipalType is the kind of IAM principal behind a caller ARN.
type PrincipalType string

const (
	PrincipalUser         PrincipalType = "user"
	PrincipalAssumedRole  PrincipalType = "assumed-role"
	PrincipalRoot         PrincipalType = "root"
	PrincipalFederated    PrincipalType = "federated-user"
	PrincipalUnrecognized PrincipalType = "unknown"
)

// principalOf inspects the resource part of a caller ARN.
func principalOf(arn string) PrincipalType {
	parts := strings.SplitN(arn, ":", 6)
	if len(parts) != 6 || parts[0] != "arn" {
		return PrincipalUnrecognized
	}

	resource := parts[5]
	switch {
	case resource == "root":
		return PrincipalRoot
	case strings.HasPrefix(resource, "user/"):
		return PrincipalUser
	case strings.HasPrefix(resource, "assumed-role/"):
		return PrincipalAssumedRole
	case strings.HasPrefix(resource, "federated-user/"):
		return PrincipalFederated
	default:
		return PrincipalUnrecognized
	}
}

func checkCallerIdentity(ctx context.Context, actx *Context, r *Result) {
	out, err := actx.Services.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil || deref(out.Arn) == "" {
		if err == nil {
			err = errEmptyResponse
		}
		r.cannotDetermine(ctx, "the caller identity", err)
		return
	}

	arn := deref(out.Arn)
	pt := principalOf(arn)
	r.set("caller_arn", arn)
	r.set("principal_type", string(pt))

	switch pt {
	case PrincipalUser:
		r.add(SeverityWarning, "Running as IAM user %s; use the root user or an administrator role to set up Control Tower", arn)
	case PrincipalAssumedRole:
		r.add(SeverityOK, "Running as assumed role %s", arn)
	case PrincipalRoot:
		r.add(SeverityOK, "Running as the account root user")
	default:
		r.add(SeverityInfo, "Running as %s; confirm it has administrator access to the management account", arn)
	}
}
