package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// SummarizeUpsert renders the batch-upsert response envelope as one
// human-readable line per category, plus any server-supplied warnings.
// Categories are sorted so the output is stable.
func SummarizeUpsert(result *model.UpsertResult) []string {
	if result == nil {
		return nil
	}

	categories := make([]string, 0, len(result.SummarizedAuditLogs))
	for category := range result.SummarizedAuditLogs {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var lines []string
	for _, category := range categories {
		count := result.SummarizedAuditLogs[category]
		if count.Insert == 0 && count.Update == 0 {
			continue
		}
		label := strings.ReplaceAll(category, "_", " ")
		lines = append(lines, fmt.Sprintf("%s: %d added, %d updated", label, count.Insert, count.Update))
	}
	lines = append(lines, result.Messages...)
	return lines
}
