package awsapi

import "strings"

// RegionSource records where the current region came from.
type RegionSource string

const (
	RegionFromFlag        RegionSource = "flag"
	RegionFromProfile     RegionSource = "profile"
	RegionFromCloudShell  RegionSource = "cloudshell"
	RegionFromEnvironment RegionSource = "environment"
	RegionUnset           RegionSource = "none"
)

// Environment variables consulted when labelling the region source.
const (
	EnvExecution     = "AWS_EXECUTION_ENV"
	EnvRegion        = "AWS_REGION"
	EnvDefaultRegion = "AWS_DEFAULT_REGION"
)

// IsManagedShell reports whether the process runs inside AWS CloudShell.
func IsManagedShell(getenv func(string) string) bool {
	return strings.HasPrefix(getenv(EnvExecution), "CloudShell")
}

// ResolveRegion picks the current region and labels where it came from. An
// explicit override wins. Otherwise the region the SDK resolved is used: it is
// labelled environment (or cloudshell) when AWS_REGION or AWS_DEFAULT_REGION
// supplied it, profile otherwise.
func ResolveRegion(override, sdkRegion string, getenv func(string) string) (string, RegionSource) {
	if r := strings.TrimSpace(override); r != "" {
		return r, RegionFromFlag
	}

	envSource := RegionFromEnvironment
	if IsManagedShell(getenv) {
		envSource = RegionFromCloudShell
	}

	if r := strings.TrimSpace(sdkRegion); r != "" {
		for _, k := range []string{EnvRegion, EnvDefaultRegion} {
			if strings.TrimSpace(getenv(k)) == r {
				return r, envSource
			}
		}
		return r, RegionFromProfile
	}

	for _, k := range []string{EnvRegion, EnvDefaultRegion} {
		if r := strings.TrimSpace(getenv(k)); r != "" {
			return r, envSource
		}
	}

	return "", RegionUnset
}
