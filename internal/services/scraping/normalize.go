package scraping

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/copydesk/internal/models"
)

// normalizeItems converts raw actor dataset rows into corpus items for
// the given platform. Rows with no usable text are skipped.
func normalizeItems(platform models.Platform, rows []map[string]interface{}) []*models.ScrapedContentItem {
	items := make([]*models.ScrapedContentItem, 0, len(rows))

	for _, row := range rows {
		var item *models.ScrapedContentItem
		switch platform {
		case models.PlatformInstagram:
			item = normalizeInstagram(row)
		case models.PlatformTikTok:
			item = normalizeTikTok(row)
		case models.PlatformYouTube:
			item = normalizeYouTube(row)
		}
		if item == nil {
			continue
		}

		item.ViralityScore = ViralityScore(item.Engagement)
		items = append(items, item)
	}

	return items
}

// Raw dataset rows are loosely typed JSON; these helpers tolerate
// missing keys and numeric values arriving as float64 or string.

func rawString(row map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := row[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func rawInt(row map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		v, ok := row[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return 0
}

func rawStringSlice(row map[string]interface{}, key string) []string {
	v, ok := row[key]
	if !ok {
		return nil
	}
	raw, ok := v.([]interface{})
	if !ok || len(raw) == 0 {
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		switch e := entry.(type) {
		case string:
			if e != "" {
				out = append(out, e)
			}
		case map[string]interface{}:
			// TikTok hashtags arrive as objects with a name field
			if name, ok := e["name"].(string); ok && name != "" {
				out = append(out, name)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func rawNested(row map[string]interface{}, key string) map[string]interface{} {
	if v, ok := row[key]; ok {
		if m, ok := v.(map[string]interface{}); ok {
			return m
		}
	}
	return nil
}

func rawTime(row map[string]interface{}, keys ...string) *time.Time {
	raw := rawString(row, keys...)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func cleanText(s string) string {
	return strings.TrimSpace(s)
}

func instagramPostURL(shortCode string) string {
	return fmt.Sprintf("https://www.instagram.com/p/%s/", shortCode)
}
