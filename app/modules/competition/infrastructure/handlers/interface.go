package competitionhandlers

import (
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers serves the competition HTTP endpoints and consumes refresh events.
type Handlers interface {
	HandleLeaderboards(w http.ResponseWriter, r *http.Request)
	HandleLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleLeaderboardWorkbook(w http.ResponseWriter, r *http.Request)
	HandleStats(w http.ResponseWriter, r *http.Request)
	HandleStatsChart(w http.ResponseWriter, r *http.Request)
	HandleGradeBreakdown(w http.ResponseWriter, r *http.Request)
	HandleParticipantSummary(w http.ResponseWriter, r *http.Request)
	HandleAvailableBlocks(w http.ResponseWriter, r *http.Request)
	HandleParticipantAscensions(w http.ResponseWriter, r *http.Request)
	HandleParticipantsByCategory(w http.ResponseWriter, r *http.Request)
	HandleSync(w http.ResponseWriter, r *http.Request)

	HandleSnapshotRefreshed(msg *message.Message) error
}
