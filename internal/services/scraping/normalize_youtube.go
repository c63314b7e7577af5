package scraping

import "github.com/ternarybob/copydesk/internal/models"

func normalizeYouTube(row map[string]interface{}) *models.ScrapedContentItem {
	title := cleanText(rawString(row, "title"))
	description := cleanText(rawString(row, "text", "description"))

	// Title and description together form the searchable text. A video
	// with neither carries no copy worth indexing.
	text := title
	if description != "" {
		if text != "" {
			text = text + "\n\n" + description
		} else {
			text = description
		}
	}
	if text == "" {
		return nil
	}

	var mediaURLs []string
	if thumb := rawString(row, "thumbnailUrl"); thumb != "" {
		mediaURLs = []string{thumb}
	}

	return &models.ScrapedContentItem{
		Platform:     models.PlatformYouTube,
		SourceURL:    rawString(row, "url"),
		SourceHandle: rawString(row, "channelName"),
		ContentText:  text,
		ContentType:  models.ContentSubtypeVideo,
		Engagement: models.EngagementMetrics{
			Likes:    rawInt(row, "likes"),
			Comments: rawInt(row, "commentsCount"),
			Views:    rawInt(row, "viewCount"),
			// YouTube does not expose share or save counts
		},
		Hashtags:  rawStringSlice(row, "hashtags"),
		MediaURLs: mediaURLs,
		PostedAt:  rawTime(row, "date"),
	}
}
