package scraping

import "github.com/ternarybob/copydesk/internal/models"

func normalizeTikTok(row map[string]interface{}) *models.ScrapedContentItem {
	text := cleanText(rawString(row, "text"))
	if text == "" {
		return nil
	}

	handle := ""
	if author := rawNested(row, "authorMeta"); author != nil {
		handle = rawString(author, "name")
	}

	var mediaURLs []string
	if video := rawString(row, "videoUrl"); video != "" {
		mediaURLs = []string{video}
	}

	return &models.ScrapedContentItem{
		Platform:     models.PlatformTikTok,
		SourceURL:    rawString(row, "webVideoUrl"),
		SourceHandle: handle,
		ContentText:  text,
		ContentType:  models.ContentSubtypeVideo,
		Engagement: models.EngagementMetrics{
			Likes:    rawInt(row, "diggCount"),
			Comments: rawInt(row, "commentCount"),
			Shares:   rawInt(row, "shareCount"),
			Saves:    rawInt(row, "collectCount"),
			Views:    rawInt(row, "playCount"),
		},
		Hashtags:  rawStringSlice(row, "hashtags"),
		Mentions:  rawStringSlice(row, "mentions"),
		MediaURLs: mediaURLs,
		PostedAt:  rawTime(row, "createTimeISO"),
	}
}
