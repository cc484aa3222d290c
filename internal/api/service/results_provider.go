package service

import "api/internal/api/models"

// ResultsProvider builds the results payload for a completed job. The
// transformation service will eventually provide a real implementation; until
// then the placeholder below is the only one.
type ResultsProvider interface {
	BuildResults(job *models.Job) (summary map[string]any, detailedResults map[string]any)
}

type PlaceholderResultsProvider struct{}

func (PlaceholderResultsProvider) BuildResults(job *models.Job) (map[string]any, map[string]any) {
	games := make([]map[string]any, 0, len(job.URLs))
	for _, url := range job.URLs {
		games = append(games, map[string]any{
			"url":    url,
			"status": "processed",
			"data":   "placeholder",
		})
	}

	summary := map[string]any{
		"total_games":     len(job.URLs),
		"processed_games": job.ProcessedURLs,
		"placeholder":     "This will be replaced with actual analysis results",
	}
	detailedResults := map[string]any{
		"games":        games,
		"player_stats": map[string]any{"placeholder": "Player analysis will go here"},
	}
	return summary, detailedResults
}
