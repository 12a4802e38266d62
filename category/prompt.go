package category

import (
	"fmt"
	"strings"
)

const promptTemplate = `You are a professional news analyst. Classify this news article into exactly one primary category out of the six below, using the title, abstract and keywords.

Categories:
1. Research — papers, preprints, conference acceptances and awards, benchmark or dataset releases. Product release notes belong to Technology & Product.
2. Technology & Product — model or product releases, performance updates, feature improvements. Funding or deal-centric stories belong to Market & Corporate.
3. Market & Corporate — investment, M&A, IPO, earnings, leadership changes, partnerships and commercial roadmaps. Public regulation belongs to Policy & Regulation.
4. Policy & Regulation — laws, regulations, guidelines, public funding, export controls, standardization and governance. A company's own commercial policy belongs to Market & Corporate.
5. Society & Culture — public adoption trends, creative and educational use, copyright and ethics debates before they reach legislation.
6. Incidents & Safety — service outages, security incidents and leaks, model misuse, major safety issues, recalls or shutdowns.

If several apply, pick by this priority: Incidents & Safety, Policy & Regulation, Market & Corporate, Research, Technology & Product, Society & Culture.

Article:
Title: %q
Abstract: %q
Keywords: %q

Respond with ONLY the category name.`

// buildPrompt assembles the classification prompt for one record.
func buildPrompt(title, abstract string, keywords []string) string {
	return fmt.Sprintf(promptTemplate, title, abstract, strings.Join(keywords, ", "))
}
