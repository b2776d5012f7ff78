package discovery

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validation reason tags. Pattern-table rejections append the matched
// pattern after ": " for auditability; callers matching on reasons should
// compare prefixes.
const (
	ReasonEmptyName            = "empty_or_too_short_name"
	ReasonArticleTitle         = "article_title_detected"
	ReasonFakePlaceholder      = "fake_placeholder_detected"
	ReasonGovernmentInitiative = "government_initiative_detected"
	ReasonStealthUnverifiable  = "stealth_mode_not_verifiable"
	ReasonLikelyArticle        = "likely_article_no_company_indicators"
	ReasonNoIndicators         = "no_company_indicators_found"
	ReasonPassed               = "passed_validation"
)

// Fixed heuristic pattern tables, compiled once at init. These are
// process-wide constants, not mutable state. Collectors pull from editorial
// listicles and government portals as well as genuine company directories;
// the strict negative tables must fire before the permissive
// looks-like-a-company fallback.
var (
	articlePatterns = compileAll(
		`the\s+\w+\s+reset`,
		`the\s+future\s+of`,
		`bharat\s+vistaar`,
		`union\s+budget`,
		`budget\s+\d{4}`,
		`how\s+\w+\s+(is|are|will)`,
		`why\s+\w+\s+matters`,
		`inside\s+\w+`,
		`beyond\s+\w+`,
		`meet\s+the`,
		`\d+\s+startups\s+to`,
		`what\s+(is|are)\s+\w+`,
		`when\s+\w+\s+(is|are)`,
		`where\s+\w+\s+(is|are)`,
		`who\s+\w+\s+(is|are)`,
		`guide\s+to`,
		`explained`,
		`analysis`,
		`report`,
		`study`,
		`trends?`,
	)

	fakePatterns = compileAll(
		`^stealth\s+(mode\s+)?(startup|fintech|saas|ai|company|venture)`,
		`^stealth\s*$`,
		`^unknown\s+`,
		`^tbd$`,
		`^placeholder$`,
		`^test\s+`,
		`^sample\s+`,
	)

	governmentPatterns = compileAll(
		`bharat\s+vistaar`,
		`government\s+of`,
		`ministry\s+of`,
		`department\s+of`,
		`initiative`,
		`scheme`,
		`programme`,
		`portal`,
	)

	companyIndicators = compileAll(
		`founded\s+(in|by|on)`,
		`(ceo|founder|co-founder|cto|cfo|chief)\s*[:@]`,
		`headquartered\s+in`,
		`based\s+in`,
		`(raised|secured|closed)\s+\$?\d+`,
		`(seed|series\s+[a-d]|pre-seed|angel|venture)\s+(funding|round|investment)`,
		`(product|platform|app|solution|service|software)\s+(that|which|for|to|helps)`,
		`(customers?|clients?|users?|enterprises?)\s+`,
		`startup`,
		`headquarters`,
		`office\s+in`,
	)

	// Suffix patterns run against the lowercased name; the CamelCase check
	// is case-sensitive and runs against the name as supplied.
	companySuffixes = compileAll(
		`\b(pvt|private)\s*(limited|ltd)`,
		`\b(technologies|tech|solutions|services|labs|ventures|innovations|systems|software|digital|data|ai|analytics|cloud|network|media|studios|group|holdings|enterprises|corp|corporation)\b`,
		`\b\.(ai|io|co|app|tech|dev|cloud)\b`,
	)

	camelCaseName = regexp.MustCompile(`^[A-Z][a-z]+[A-Z][a-z]+`)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// Validate decides whether a raw candidate is a plausible company rather
// than an article title, placeholder, or government program. Rules apply in
// strict order and short-circuit on the first match.
func Validate(name, description, source string) (bool, string) {
	if len(name) < 2 {
		return false, ReasonEmptyName
	}

	nameLower := strings.ToLower(strings.TrimSpace(name))
	descLower := strings.ToLower(description)
	sourceLower := strings.ToLower(source)

	if p := firstMatch(articlePatterns, nameLower); p != "" {
		return false, ReasonArticleTitle + ": " + p
	}
	if p := firstMatch(fakePatterns, nameLower); p != "" {
		return false, ReasonFakePlaceholder + ": " + p
	}
	for _, re := range governmentPatterns {
		if re.MatchString(nameLower) || re.MatchString(descLower) {
			return false, ReasonGovernmentInitiative + ": " + re.String()
		}
	}

	hasIndicators := anyMatch(companyIndicators, descLower)

	if strings.Contains(sourceLower, "stealth_signals") {
		return false, ReasonStealthUnverifiable
	}
	if strings.Contains(sourceLower, "features") && !hasIndicators {
		return false, ReasonLikelyArticle
	}

	hasSuffix := anyMatch(companySuffixes, nameLower) || camelCaseName.MatchString(name)
	shortCapitalized := looksLikeCompanyName(name)

	if !hasIndicators && !hasSuffix && !shortCapitalized {
		if len(name) > 20 || !shortCapitalized {
			return false, ReasonNoIndicators
		}
	}
	return true, ReasonPassed
}

func firstMatch(patterns []*regexp.Regexp, s string) string {
	for _, re := range patterns {
		if re.MatchString(s) {
			return re.String()
		}
	}
	return ""
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	return firstMatch(patterns, s) != ""
}

// looksLikeCompanyName reports whether the name is short (at most four
// words) with every word capitalized, the shape of a proper-noun brand.
func looksLikeCompanyName(name string) bool {
	words := strings.Fields(name)
	if len(words) == 0 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
