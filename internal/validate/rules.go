package validate

import (
	"fmt"
	"net/netip"
	"regexp"
	"strings"
)

var privateV4Ranges = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("169.254.0.0/16"),
}

var privateV6Ranges = []netip.Prefix{
	netip.MustParsePrefix("fc00::/7"),
	netip.MustParsePrefix("fe80::/10"),
	netip.MustParsePrefix("::1/128"),
}

// IPRange validates a CIDR range intended for a cloud virtual network.
func IPRange(answer string) []Finding {
	var findings []Finding

	prefix, err := netip.ParsePrefix(strings.TrimSpace(answer))
	if err != nil {
		return []Finding{{
			Severity:       SeverityError,
			Message:        fmt.Sprintf("Invalid IP range format: %s", answer),
			Recommendation: "Use CIDR notation (e.g., 10.0.0.0/16)",
		}}
	}
	prefix = prefix.Masked()

	ranges := privateV4Ranges
	if !prefix.Addr().Is4() {
		ranges = privateV6Ranges
	}
	private := false
	for _, r := range ranges {
		// The whole subnet must sit inside a private block, not just its base.
		if r.Bits() <= prefix.Bits() && r.Contains(prefix.Addr()) {
			private = true
			break
		}
	}
	if !private {
		findings = append(findings, Finding{
			Severity:       SeverityError,
			Message:        fmt.Sprintf("IP range %s is not in private address space", answer),
			Recommendation: "Use private IP ranges: 10.0.0.0/8, 172.16.0.0/12, or 192.168.0.0/16",
		})
	}

	// Size guidance is IPv4-only; the arithmetic below assumes a 32-bit space.
	if prefix.Addr().Is4() {
		bits := prefix.Bits()
		switch {
		case bits > 29:
			// 5 addresses per subnet are reserved by the platform.
			usable := (1 << (32 - bits)) - 5
			if usable < 0 {
				usable = 0
			}
			findings = append(findings, Finding{
				Severity:       SeverityWarning,
				Message:        fmt.Sprintf("Subnet /%d is very small (max %d usable IPs)", bits, usable),
				Recommendation: "Consider using /24 or larger for production workloads",
			})
		case bits < 16:
			findings = append(findings, Finding{
				Severity:       SeverityWarning,
				Message:        fmt.Sprintf("Network /%d is very large", bits),
				Recommendation: "Consider segmenting into smaller virtual networks for better security and management",
			})
		}

		// /16 for the network, /24 for subnets is the recommended split.
		if bits >= 16 && bits <= 24 {
			findings = append(findings, Finding{
				Severity: SeveritySuccess,
				Message:  fmt.Sprintf("IP range %s follows landing-zone best practices", answer),
			})
		}
	}

	return findings
}

// EnvironmentSeparation validates the environment isolation strategy.
func EnvironmentSeparation(answer string) []Finding {
	var findings []Finding
	lower := strings.ToLower(answer)

	switch {
	case strings.Contains(lower, "subscription") && strings.Contains(lower, "separate"):
		findings = append(findings, Finding{
			Severity:       SeveritySuccess,
			Message:        "Subscription-level isolation follows landing-zone best practices",
			Recommendation: "This provides the strongest security boundary and governance",
		})
	case strings.Contains(lower, "resource group"):
		findings = append(findings, Finding{
			Severity:       SeverityInfo,
			Message:        "Resource group isolation is acceptable for small deployments",
			Recommendation: "Consider subscription-level isolation for production workloads",
		})
	case strings.Contains(lower, "single") || strings.Contains(lower, "same"):
		findings = append(findings, Finding{
			Severity:       SeverityWarning,
			Message:        "Single environment approach increases risk",
			Recommendation: "Strongly recommend separating dev, test, and production environments",
		})
	}

	return findings
}

// BackupStrategy validates backup and disaster-recovery answers.
func BackupStrategy(answer string) []Finding {
	var findings []Finding
	lower := strings.ToLower(answer)

	hasRPO := strings.Contains(lower, "rpo") || strings.Contains(lower, "recovery point")
	hasRTO := strings.Contains(lower, "rto") || strings.Contains(lower, "recovery time")

	if hasRPO && hasRTO {
		findings = append(findings, Finding{
			Severity:       SeveritySuccess,
			Message:        "RPO and RTO objectives defined",
			Recommendation: "Ensure backup solutions meet these requirements",
		})
	} else {
		var missing []string
		if !hasRPO {
			missing = append(missing, "RPO (Recovery Point Objective)")
		}
		if !hasRTO {
			missing = append(missing, "RTO (Recovery Time Objective)")
		}
		findings = append(findings, Finding{
			Severity:       SeverityWarning,
			Message:        fmt.Sprintf("Missing critical DR metrics: %s", strings.Join(missing, ", ")),
			Recommendation: "Define RPO and RTO to determine appropriate backup strategy",
		})
	}

	if strings.Contains(lower, "geo") || strings.Contains(lower, "region") {
		findings = append(findings, Finding{
			Severity: SeveritySuccess,
			Message:  "Geo-redundancy mentioned for disaster recovery",
		})
	} else {
		findings = append(findings, Finding{
			Severity:       SeverityInfo,
			Message:        "Consider geo-redundancy for critical workloads",
			Recommendation: "Backup and site-recovery services support cross-region replication",
		})
	}

	return findings
}

// ConnectivityMethod validates hybrid connectivity choices.
func ConnectivityMethod(answer string) []Finding {
	var findings []Finding
	lower := strings.ToLower(answer)

	hasExpressRoute := strings.Contains(lower, "expressroute") || strings.Contains(lower, "express route")
	hasVPN := strings.Contains(lower, "vpn")

	if hasExpressRoute {
		findings = append(findings, Finding{
			Severity:       SeveritySuccess,
			Message:        "ExpressRoute provides dedicated, low-latency connectivity",
			Recommendation: "Recommended for production workloads with high throughput needs",
		})
	} else if hasVPN {
		findings = append(findings, Finding{
			Severity:       SeverityInfo,
			Message:        "VPN is cost-effective but has bandwidth/latency limitations",
			Recommendation: "Consider ExpressRoute for production workloads or high data transfer",
		})
	}

	if hasExpressRoute && hasVPN {
		findings = append(findings, Finding{
			Severity:       SeveritySuccess,
			Message:        "Dual connectivity (ExpressRoute + VPN) provides redundancy",
			Recommendation: "This is the best practice for mission-critical workloads",
		})
	}

	return findings
}

var budgetAmountRegex = regexp.MustCompile(`\$[\d,]+|\d+\s*(k|thousand|m|million)`)

// Budget validates budget and cost-management answers.
func Budget(answer string) []Finding {
	var findings []Finding
	lower := strings.ToLower(answer)

	if budgetAmountRegex.MatchString(lower) {
		findings = append(findings, Finding{
			Severity: SeveritySuccess,
			Message:  "Budget amount specified",
		})
	} else {
		findings = append(findings, Finding{
			Severity:       SeverityWarning,
			Message:        "No specific budget amount mentioned",
			Recommendation: "Define a clear budget to enable cost controls and alerts",
		})
	}

	if strings.Contains(lower, "monitor") || strings.Contains(lower, "alert") {
		findings = append(findings, Finding{
			Severity:       SeveritySuccess,
			Message:        "Cost monitoring mentioned",
			Recommendation: "Cost management tooling provides budgets, alerts, and recommendations",
		})
	}

	return findings
}

var complianceFrameworks = []struct {
	key  string
	name string
}{
	{"pci", "PCI-DSS"},
	{"hipaa", "HIPAA"},
	{"soc", "SOC 2"},
	{"iso", "ISO 27001"},
	{"gdpr", "GDPR"},
	{"fedramp", "FedRAMP"},
}

// SecurityRequirements validates security and compliance answers.
func SecurityRequirements(answer string) []Finding {
	var findings []Finding
	lower := strings.ToLower(answer)

	var found []string
	for _, fw := range complianceFrameworks {
		if strings.Contains(lower, fw.key) {
			found = append(found, fw.name)
		}
	}
	if len(found) > 0 {
		findings = append(findings, Finding{
			Severity:       SeveritySuccess,
			Message:        fmt.Sprintf("Compliance frameworks identified: %s", strings.Join(found, ", ")),
			Recommendation: "Ensure the landing zone meets these compliance requirements",
		})
	}

	if strings.Contains(lower, "mfa") || strings.Contains(lower, "multi-factor") {
		findings = append(findings, Finding{
			Severity: SeveritySuccess,
			Message:  "MFA requirement mentioned - critical for security",
		})
	} else {
		findings = append(findings, Finding{
			Severity:       SeverityWarning,
			Message:        "MFA not mentioned in security requirements",
			Recommendation: "Strongly recommend enforcing MFA for all user access",
		})
	}

	return findings
}

var conventionCharRegex = regexp.MustCompile(`^[a-z0-9<>\-_ ]+$`)

// NamingConventionPattern validates a proposed resource naming convention
// template, e.g. "<resource-type>-<workload>-<env>-<region>-<instance>".
func NamingConventionPattern(answer string) []Finding {
	var findings []Finding
	trimmed := strings.TrimSpace(answer)
	lower := strings.ToLower(trimmed)

	if !conventionCharRegex.MatchString(lower) {
		findings = append(findings, Finding{
			Severity:       SeverityWarning,
			Message:        "Convention contains characters many resource types reject",
			Recommendation: "Stick to lowercase letters, numbers, and hyphens",
		})
	}
	if trimmed != lower {
		findings = append(findings, Finding{
			Severity:       SeverityInfo,
			Message:        "Convention uses uppercase letters",
			Recommendation: "Several resource types require lowercase names; prefer a lowercase convention",
		})
	}
	if strings.Contains(lower, "<env") || strings.Contains(lower, "environment") {
		findings = append(findings, Finding{
			Severity: SeveritySuccess,
			Message:  "Convention distinguishes environments",
		})
	} else {
		findings = append(findings, Finding{
			Severity:       SeverityInfo,
			Message:        "Convention does not include an environment segment",
			Recommendation: "Include an environment token (dev/test/prod) to avoid cross-environment mistakes",
		})
	}

	return findings
}

var resourceNameRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

var recommendedPrefixes = map[string][]string{
	"vnet":     {"vnet-", "vn-"},
	"subnet":   {"snet-", "sub-"},
	"nsg":      {"nsg-"},
	"vm":       {"vm-"},
	"storage":  {"st", "stor"},
	"keyvault": {"kv-"},
	"law":      {"law-", "log-"},
}

// ResourceName validates a concrete resource name against general naming
// rules and the recommended per-type prefixes.
func ResourceName(name, resourceType string) []Finding {
	var findings []Finding

	if !resourceNameRegex.MatchString(strings.ToLower(name)) {
		findings = append(findings, Finding{
			Severity:       SeverityWarning,
			Message:        fmt.Sprintf("Name %q contains invalid characters", name),
			Recommendation: "Use lowercase letters, numbers, and hyphens only",
		})
	}

	switch {
	case len(name) > 63:
		findings = append(findings, Finding{
			Severity:       SeverityError,
			Message:        fmt.Sprintf("Name %q is too long (%d chars, max 63)", name, len(name)),
			Recommendation: "Shorten the resource name",
		})
	case len(name) < 3:
		findings = append(findings, Finding{
			Severity:       SeverityWarning,
			Message:        fmt.Sprintf("Name %q is very short", name),
			Recommendation: "Consider using descriptive names for better management",
		})
	}

	if prefixes, ok := recommendedPrefixes[resourceType]; ok {
		hasPrefix := false
		for _, p := range prefixes {
			if strings.HasPrefix(strings.ToLower(name), p) {
				hasPrefix = true
				break
			}
		}
		if !hasPrefix {
			findings = append(findings, Finding{
				Severity:       SeverityInfo,
				Message:        fmt.Sprintf("Consider using recommended prefix for %s", resourceType),
				Recommendation: fmt.Sprintf("Suggested prefixes: %s", strings.Join(prefixes, ", ")),
			})
		}
	}

	return findings
}
