package reports

import "github.com/ternarybob/copydesk/internal/models"

// reportSpec pairs a report title with its generation prompt. Prompt
// placeholders are filled in the order viral data, generated data,
// brand voice where present.
type reportSpec struct {
	title  string
	prompt string
}

var reportSpecs = map[models.ReportType]reportSpec{
	models.ReportContentAudit: {
		title: "Content Performance Audit",
		prompt: `Analyze the following data about the salon industry social media landscape.

Viral Content from the Salon Niche (top performing posts):
%s

Generated Content History for YSS:
%s

Brand Voice Profile:
%s

Produce a comprehensive Content Performance Audit report in markdown covering:

1. **Executive Summary** - Key findings in 3-4 bullet points
2. **Viral Content Analysis** - What patterns make salon content go viral (hooks, formats, topics, timing)
3. **Content Gap Analysis** - Topics and formats that perform well in the niche but YSS hasn't covered
4. **Engagement Benchmarks** - Average metrics for top content, what "good" looks like
5. **Top Content Themes** - The 5-7 most engaging content themes in the salon niche
6. **Recommendations** - 5-10 specific, actionable recommendations for YSS's content strategy
7. **Quick Wins** - 3 things that can be implemented this week

Be data-driven. Reference specific examples from the data. Be specific, not generic.`,
	},
	models.ReportCompetitorAnalysis: {
		title: "Competitive Landscape Analysis",
		prompt: `Analyze the following scraped content from salon industry social media accounts.

Top Performing Content by Account:
%s

Produce a Competitive Landscape Analysis report in markdown covering:

1. **Executive Summary** - Key competitive insights
2. **Top Accounts** - Who are the top performers in salon social media and why
3. **Content Strategy Patterns** - How competitors post (frequency, formats, themes)
4. **Engagement Tactics** - Specific techniques that drive high engagement
5. **Hashtag Strategies** - What hashtags top performers use and how
6. **Content Gaps** - What competitors are NOT covering (opportunity for YSS)
7. **Differentiation Opportunities** - How YSS can stand out from the crowd
8. **Threat Assessment** - Competitors whose strategies could impact YSS

Be specific. Name accounts, reference specific posts, and provide actionable insights.`,
	},
	models.ReportStrategy: {
		title: "Content Strategy Recommendations",
		prompt: `Based on all available data, create a content strategy for YourSalonSupport.

Brand Voice Profile:
%s

Viral Content Trends in Salon Niche:
%s

Current Generated Content:
%s

Produce a Content Strategy Report in markdown covering:

1. **Executive Summary** - Strategy direction in 3 sentences
2. **Content Pillars** - 4-5 content themes/pillars with descriptions and example post ideas
3. **Platform Strategy**
   - Instagram: posting cadence, best formats, optimal times
   - TikTok: content approach, trending formats, hashtag strategy
   - YouTube: content types, SEO approach
4. **Format Mix** - Recommended split between reels, carousels, single posts, stories
5. **Hook Formulas** - 10 proven hook templates customized for salon content
6. **Monthly Content Calendar** - A template week with specific content slots
7. **KPIs & Success Metrics** - What to measure and target benchmarks
8. **30-60-90 Day Plan** - Phased rollout strategy

Make every recommendation specific to the salon/beauty industry. Include example post ideas.`,
	},
}
