package tools

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Vendors whose published case-study libraries we know how to reach.
var caseStudyDomains = map[string]string{
	"bloomreach":  "bloomreach.com",
	"salesforce":  "salesforce.com",
	"hubspot":     "hubspot.com",
	"adobe":       "adobe.com",
	"oracle":      "oracle.com",
	"sap":         "sap.com",
	"microsoft":   "microsoft.com",
	"aws":         "aws.amazon.com",
	"amazon":      "aws.amazon.com",
	"google":      "cloud.google.com",
	"googlecloud": "cloud.google.com",
}

const caseStudiesMaxCount = 10

// CaseStudiesTool searches vendor sites for case studies and success
// stories. It delegates the heavy lifting to an embedded web search,
// constraining the query to the vendor's domain.
type CaseStudiesTool struct {
	web    *WebSearchTool
	logger *log.Logger
}

func NewCaseStudiesTool(web *WebSearchTool) *CaseStudiesTool {
	return &CaseStudiesTool{
		web:    web,
		logger: log.New(log.Writer(), "[CASESTUDY] ", log.LstdFlags),
	}
}

func (t *CaseStudiesTool) Name() string { return "case_studies_search" }

func (t *CaseStudiesTool) Description() string {
	return "Search for case studies, success stories, and customer testimonials from specific company domains"
}

func (t *CaseStudiesTool) Parameters() []Parameter {
	return []Parameter{
		{Name: "company", Type: "string", Description: "The company whose case studies to search for (e.g., 'Bloomreach', 'Salesforce')", Required: true},
		{Name: "industry", Type: "string", Description: "Industry or vertical to focus on (e.g., 'retail', 'healthcare', 'finance')"},
		{Name: "topic", Type: "string", Description: "Specific topic or use case (e.g., 'personalization', 'customer engagement')"},
		{Name: "count", Type: "integer", Description: "Number of results to return (default: 2, max: 10)"},
		{Name: "fetch_content", Type: "boolean", Description: "Whether to fetch full content from top results (default: true)"},
	}
}

func companyDomain(company string) string {
	key := strings.ReplaceAll(strings.ToLower(company), " ", "")
	if domain, ok := caseStudyDomains[key]; ok {
		return domain
	}
	return key + ".com"
}

func (t *CaseStudiesTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	company := stringArg(args, "company")
	if strings.TrimSpace(company) == "" {
		return "Error performing search: company is required", nil
	}
	industry := stringArg(args, "industry")
	topic := stringArg(args, "topic")
	count := intArg(args, "count", defaultResultCount)
	if count > caseStudiesMaxCount {
		count = caseStudiesMaxCount
	}
	fetchContent := boolArg(args, "fetch_content", true)

	queryParts := []string{
		fmt.Sprintf("site:%s", companyDomain(company)),
		"(case study OR success story OR customer story OR testimonial)",
	}
	if industry != "" {
		queryParts = append(queryParts, fmt.Sprintf("%q", industry))
	}
	if topic != "" {
		queryParts = append(queryParts, fmt.Sprintf("%q", topic))
	}
	query := strings.Join(queryParts, " ")
	t.logger.Printf("case studies query: %s", query)

	result, err := t.web.run(ctx, query, count, "year", fetchContent)
	if err != nil {
		return "", err
	}

	header := fmt.Sprintf("Case studies from %s", company)
	if industry != "" {
		header += fmt.Sprintf(" in %s", industry)
	}
	if topic != "" {
		header += fmt.Sprintf(" about %s", topic)
	}

	// Swap the generic search header for a case-study one.
	if idx := strings.Index(result, "\n"); idx >= 0 && strings.HasPrefix(result, "🔍") {
		result = header + ":" + result[idx:]
	}
	return result, nil
}
