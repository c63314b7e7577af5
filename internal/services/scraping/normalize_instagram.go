package scraping

import "github.com/ternarybob/copydesk/internal/models"

// instagramContentTypes maps the scraper's type labels onto corpus
// content subtypes.
var instagramContentTypes = map[string]string{
	"Image":        models.ContentSubtypePost,
	"GraphImage":   models.ContentSubtypePost,
	"Video":        models.ContentSubtypeReel,
	"GraphVideo":   models.ContentSubtypeReel,
	"Sidecar":      models.ContentSubtypeCarousel,
	"GraphSidecar": models.ContentSubtypeCarousel,
}

func normalizeInstagram(row map[string]interface{}) *models.ScrapedContentItem {
	text := cleanText(rawString(row, "caption", "text"))
	if text == "" {
		return nil
	}

	sourceURL := rawString(row, "url")
	if sourceURL == "" {
		if shortCode := rawString(row, "shortCode"); shortCode != "" {
			sourceURL = instagramPostURL(shortCode)
		}
	}

	handle := rawString(row, "ownerUsername", "username")
	if handle == "" {
		if owner := rawNested(row, "owner"); owner != nil {
			handle = rawString(owner, "username")
		}
	}

	contentType := models.ContentSubtypePost
	if mapped, ok := instagramContentTypes[rawString(row, "type")]; ok {
		contentType = mapped
	}

	var mediaURLs []string
	if display := rawString(row, "displayUrl"); display != "" {
		mediaURLs = []string{display}
	}

	return &models.ScrapedContentItem{
		Platform:     models.PlatformInstagram,
		SourceURL:    sourceURL,
		SourceHandle: handle,
		ContentText:  text,
		ContentType:  contentType,
		Engagement: models.EngagementMetrics{
			Likes:    rawInt(row, "likesCount", "likes"),
			Comments: rawInt(row, "commentsCount", "comments"),
			Views:    rawInt(row, "videoViewCount"),
			// Instagram does not expose share or save counts
		},
		Hashtags:  rawStringSlice(row, "hashtags"),
		Mentions:  rawStringSlice(row, "mentions"),
		MediaURLs: mediaURLs,
		PostedAt:  rawTime(row, "timestamp", "date"),
	}
}
