package catalog

// landingZoneQuestions is the built-in discovery catalog for a cloud
// landing-zone engagement. Order here is the order questions are presented
// and exported in.
var landingZoneQuestions = []Question{
	// Business context
	{
		ID:       "biz_001",
		Category: CategoryBusinessContext,
		Priority: PriorityCritical,
		Text:     "What is the primary business objective for moving to the cloud?",
		HelpText: "Understanding business drivers helps align technical decisions",
		Examples: []string{
			"Digital transformation initiative",
			"Cost optimization and datacenter exit",
			"Support new products/services",
			"Improve agility and time-to-market",
		},
	},
	{
		ID:       "biz_002",
		Category: CategoryBusinessContext,
		Priority: PriorityCritical,
		Text:     "What is the expected timeline for the deployment?",
		HelpText: "Timeline impacts design choices and migration strategy",
		Examples: []string{"3 months", "6 months", "12 months", "18+ months"},
	},
	{
		ID:       "biz_003",
		Category: CategoryBusinessContext,
		Priority: PriorityHigh,
		Text:     "What are the critical workloads to migrate first?",
		HelpText: "Identifies pilot workloads and initial design requirements",
	},
	{
		ID:       "biz_004",
		Category: CategoryBusinessContext,
		Priority: PriorityMedium,
		Text:     "What is the organization's cloud maturity level?",
		Examples: []string{"No cloud experience", "Some cloud pilots", "Cloud-first strategy", "Multi-cloud expertise"},
	},

	// Network design
	{
		ID:                "net_001",
		Category:          CategoryNetworkDesign,
		Priority:          PriorityCritical,
		Text:              "What IP address ranges are available for cloud virtual networks?",
		HelpText:          "Must not conflict with on-premises or other cloud networks",
		Examples:          []string{"10.100.0.0/16", "172.16.0.0/12", "192.168.0.0/16"},
		ValidationPattern: `^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}/\d{1,2}$`,
	},
	{
		ID:       "net_002",
		Category: CategoryNetworkDesign,
		Priority: PriorityCritical,
		Text:     "What on-premises networks need connectivity to the cloud?",
		HelpText: "Determines dedicated-circuit or VPN requirements",
	},
	{
		ID:       "net_003",
		Category: CategoryNetworkDesign,
		Priority: PriorityCritical,
		Text:     "Preferred connectivity method: ExpressRoute, Site-to-Site VPN, or both?",
		Examples: []string{"ExpressRoute (dedicated, low-latency)", "S2S VPN (cost-effective)", "Hybrid (both for redundancy)"},
	},
	{
		ID:               "net_004",
		Category:         CategoryNetworkDesign,
		Priority:         PriorityHigh,
		Text:             "What is the required dedicated-circuit bandwidth?",
		Examples:         []string{"50 Mbps", "100 Mbps", "500 Mbps", "1 Gbps", "10 Gbps"},
		RelatedQuestions: []string{"net_003"},
	},
	{
		ID:       "net_005",
		Category: CategoryNetworkDesign,
		Priority: PriorityHigh,
		Text:     "What is the hub-spoke topology design? (Number of spokes, segmentation strategy)",
		HelpText: "Hub-spoke is the recommended landing-zone pattern",
	},
	{
		ID:       "net_006",
		Category: CategoryNetworkDesign,
		Priority: PriorityHigh,
		Text:     "What are the DNS server IPs (on-premises and cloud)?",
		Examples: []string{"On-prem: 10.50.10.5, 10.50.10.6", "Cloud: platform default resolver"},
	},
	{
		ID:       "net_007",
		Category: CategoryNetworkDesign,
		Priority: PriorityMedium,
		Text:     "Are private endpoints required for managed PaaS services?",
		Examples: []string{"Yes, for all PaaS", "Only for critical services", "No, use service endpoints"},
	},

	// Security & identity
	{
		ID:       "sec_001",
		Category: CategorySecurityIdentity,
		Priority: PriorityCritical,
		Text:     "Is Multi-Factor Authentication (MFA) required for all users?",
		Examples: []string{"Yes, all users", "Admins only", "Conditional access based"},
	},
	{
		ID:       "sec_002",
		Category: CategorySecurityIdentity,
		Priority: PriorityCritical,
		Text:     "What is the identity provider? (cloud-native directory, hybrid, federated)",
		Examples: []string{"Cloud-native directory", "Hybrid with directory sync", "Federated (ADFS, PingFederate)"},
	},
	{
		ID:       "sec_003",
		Category: CategorySecurityIdentity,
		Priority: PriorityCritical,
		Text:     "What encryption requirements exist? (at-rest, in-transit, customer-managed keys)",
		HelpText: "Customer-managed keys vs platform-managed keys",
	},
	{
		ID:       "sec_004",
		Category: CategorySecurityIdentity,
		Priority: PriorityHigh,
		Text:     "Is privileged identity management (just-in-time admin access) required?",
		Examples: []string{"Yes, for all admins", "Yes, for production only", "No"},
	},
	{
		ID:       "sec_005",
		Category: CategorySecurityIdentity,
		Priority: PriorityHigh,
		Text:     "What are the firewall requirements? (platform firewall, NVA, both)",
		Examples: []string{"Platform firewall", "Third-party NVA (Palo Alto, Fortinet)", "Hybrid approach"},
	},
	{
		ID:       "sec_006",
		Category: CategorySecurityIdentity,
		Priority: PriorityMedium,
		Text:     "Is enhanced DDoS protection required?",
		Examples: []string{"Yes, for internet-facing apps", "No, basic tier sufficient"},
	},
	{
		ID:       "sec_007",
		Category: CategorySecurityIdentity,
		Priority: PriorityMedium,
		Text:     "What SIEM solution will be used?",
		Examples: []string{"Cloud-native SIEM", "Splunk", "QRadar", "Existing on-prem SIEM"},
	},

	// Governance
	{
		ID:       "gov_001",
		Category: CategoryGovernance,
		Priority: PriorityCritical,
		Text:     "What is the subscription strategy? (per workload, per environment, per business unit)",
		HelpText: "Subscription design impacts billing, limits, and isolation",
	},
	{
		ID:       "gov_002",
		Category: CategoryGovernance,
		Priority: PriorityHigh,
		Text:     "What management group hierarchy is required?",
		Examples: []string{"Root > Platform > Landing Zones", "By geography", "By business unit"},
	},
	{
		ID:       "gov_003",
		Category: CategoryGovernance,
		Priority: PriorityHigh,
		Text:     "How will environments (dev, test, production) be separated?",
		Examples: []string{"Separate subscriptions per environment", "Separate resource groups", "Single shared environment"},
	},
	{
		ID:       "gov_004",
		Category: CategoryGovernance,
		Priority: PriorityHigh,
		Text:     "What naming conventions will be used for cloud resources?",
		HelpText: "Consistent naming aids management and automation",
		Examples: []string{"<resource-type>-<workload>-<env>-<region>-<instance>"},
	},
	{
		ID:       "gov_005",
		Category: CategoryGovernance,
		Priority: PriorityCritical,
		Text:     "Which regions are approved for deployment?",
		Examples: []string{"East US, West US", "West Europe, North Europe", "Southeast Asia, East Asia"},
	},
	{
		ID:       "gov_006",
		Category: CategoryGovernance,
		Priority: PriorityMedium,
		Text:     "What resource types are prohibited? (VM sizes, services)",
		Examples: []string{"No burst-class VMs", "No basic tier services", "No public IPs on VMs"},
	},
	{
		ID:       "gov_007",
		Category: CategoryGovernance,
		Priority: PriorityHigh,
		Text:     "What mandatory tags must be enforced on all resources?",
		Examples: []string{"CostCenter, Owner, Environment, Application", "ProjectCode, Compliance, DataClassification"},
	},

	// Compliance
	{
		ID:       "comp_001",
		Category: CategoryCompliance,
		Priority: PriorityCritical,
		Text:     "What regulatory compliance requirements apply? (HIPAA, PCI-DSS, SOC2, ISO)",
		HelpText: "Determines required controls and certifications",
	},
	{
		ID:       "comp_002",
		Category: CategoryCompliance,
		Priority: PriorityCritical,
		Text:     "What is the data sovereignty requirement? (data residency, cross-border restrictions)",
		Examples: []string{"Data must stay in US", "EU GDPR compliance", "No restrictions"},
	},
	{
		ID:       "comp_003",
		Category: CategoryCompliance,
		Priority: PriorityHigh,
		Text:     "What is the required audit log retention period?",
		Examples: []string{"90 days", "1 year", "7 years (financial)", "Indefinite"},
	},
	{
		ID:       "comp_004",
		Category: CategoryCompliance,
		Priority: PriorityHigh,
		Text:     "Are there specific security frameworks to follow? (NIST, CIS, cloud security benchmark)",
	},

	// Operations
	{
		ID:       "ops_001",
		Category: CategoryOperations,
		Priority: PriorityHigh,
		Text:     "What monitoring solution will be used?",
		Examples: []string{"Platform monitor + log analytics", "Datadog", "Dynatrace", "Hybrid"},
	},
	{
		ID:       "ops_002",
		Category: CategoryOperations,
		Priority: PriorityHigh,
		Text:     "What are the SLA requirements for production workloads?",
		Examples: []string{"99.9% (3-9s)", "99.95% (zone-redundant)", "99.99% (4-9s)", "99.999% (5-9s)"},
	},
	{
		ID:       "ops_003",
		Category: CategoryOperations,
		Priority: PriorityMedium,
		Text:     "What is the maintenance window for production systems?",
		Examples: []string{"Saturday 2-6 AM EST", "No maintenance window (always-on)", "Flexible"},
	},
	{
		ID:       "ops_004",
		Category: CategoryOperations,
		Priority: PriorityHigh,
		Text:     "Is automation required for provisioning? (IaC tool preference)",
		Examples: []string{"Terraform", "Bicep", "ARM Templates", "Pipelines", "GitHub Actions"},
	},
	{
		ID:       "ops_005",
		Category: CategoryOperations,
		Priority: PriorityMedium,
		Text:     "What ticketing/ITSM system is used?",
		Examples: []string{"ServiceNow", "Jira Service Desk", "BMC Remedy", "Azure DevOps"},
	},

	// Disaster recovery
	{
		ID:       "dr_001",
		Category: CategoryDisasterRecovery,
		Priority: PriorityCritical,
		Text:     "What are the RPO (Recovery Point Objective) requirements?",
		HelpText: "How much data loss is acceptable",
		Examples: []string{"15 minutes", "1 hour", "4 hours", "24 hours"},
	},
	{
		ID:       "dr_002",
		Category: CategoryDisasterRecovery,
		Priority: PriorityCritical,
		Text:     "What are the RTO (Recovery Time Objective) requirements?",
		HelpText: "How quickly must systems be restored",
		Examples: []string{"1 hour", "4 hours", "8 hours", "24 hours"},
	},
	{
		ID:       "dr_003",
		Category: CategoryDisasterRecovery,
		Priority: PriorityHigh,
		Text:     "Is multi-region deployment required for DR?",
		Examples: []string{"Yes, active-active", "Yes, active-passive", "No, zone-redundant sufficient"},
	},
	{
		ID:       "dr_004",
		Category: CategoryDisasterRecovery,
		Priority: PriorityHigh,
		Text:     "What backup retention policy is required?",
		Examples: []string{"Daily for 30 days", "Daily/7d, Weekly/4w, Monthly/12m, Yearly/7y"},
	},

	// Cost & budgeting
	{
		ID:       "cost_001",
		Category: CategoryCostBudgeting,
		Priority: PriorityCritical,
		Text:     "What is the approved cloud budget for Year 1?",
		Examples: []string{"$100K", "$500K", "$1M", "$5M+"},
	},
	{
		ID:       "cost_002",
		Category: CategoryCostBudgeting,
		Priority: PriorityHigh,
		Text:     "How should costs be allocated? (business unit, project, environment)",
	},
	{
		ID:       "cost_003",
		Category: CategoryCostBudgeting,
		Priority: PriorityMedium,
		Text:     "Are reserved instances or savings plans being considered?",
		Examples: []string{"Yes, 1-year commitment", "Yes, 3-year commitment", "No, pay-as-you-go"},
	},
	{
		ID:       "cost_004",
		Category: CategoryCostBudgeting,
		Priority: PriorityMedium,
		Text:     "What cost alert thresholds should be configured?",
		Examples: []string{"80% budget warning, 90% critical", "Monthly variance >10%"},
	},

	// Integration
	{
		ID:       "int_001",
		Category: CategoryIntegration,
		Priority: PriorityHigh,
		Text:     "What on-premises systems need integration with the cloud?",
		Examples: []string{"Active Directory", "SAP", "Oracle ERP", "File servers", "Databases"},
	},
	{
		ID:       "int_002",
		Category: CategoryIntegration,
		Priority: PriorityMedium,
		Text:     "Are hybrid file services required?",
	},
	{
		ID:       "int_003",
		Category: CategoryIntegration,
		Priority: PriorityMedium,
		Text:     "What third-party SaaS applications need integration?",
		Examples: []string{"Salesforce", "Office 365", "ServiceNow", "Workday"},
	},

	// Workload planning
	{
		ID:       "wkld_001",
		Category: CategoryWorkloadPlanning,
		Priority: PriorityHigh,
		Text:     "How many VMs are expected in Year 1?",
		Examples: []string{"<50", "50-200", "200-500", "500+"},
	},
	{
		ID:       "wkld_002",
		Category: CategoryWorkloadPlanning,
		Priority: PriorityHigh,
		Text:     "What application architectures will be used? (IaaS, PaaS, containers, serverless)",
	},
	{
		ID:       "wkld_003",
		Category: CategoryWorkloadPlanning,
		Priority: PriorityMedium,
		Text:     "Is Kubernetes required? If yes, how many clusters?",
	},
	{
		ID:       "wkld_004",
		Category: CategoryWorkloadPlanning,
		Priority: PriorityHigh,
		Text:     "What database platforms are needed? (SQL, document store, PostgreSQL, MySQL)",
	},
}
