// Package scoring implements the pure point rules for prediction
// settlement. It has no storage or transport dependencies; the settlement
// service feeds it one prediction and one confirmed result at a time.
package scoring

import (
	"github.com/shopspring/decimal"

	"playerslog-backend/internal/models"
)

// PointTable carries the configured magnitude for each scoring leg.
type PointTable struct {
	WinLosePoints     int64
	MVPTypePoints     int64
	MVPPositionPoints int64
}

// Prediction is the scorable slice of a goll. FavoriteTeam is the author's
// declared team at settlement time; the Win/Loss call is relative to it.
type Prediction struct {
	FavoriteTeam string
	WinLoss      *models.WinLoss
	MVPType      *models.MVPType
	MVPPosition  *models.MVPPosition
}

// Result is a game's confirmed outcome.
type Result struct {
	HomeTeam    string
	AwayTeam    string
	Winner      *string
	MVPType     *models.MVPType
	MVPPosition *models.MVPPosition
}

// Breakdown is the per-leg outcome for one participant.
type Breakdown struct {
	WinLosePoints      int64
	MVPTypePoints      int64
	MVPPositionPoints  int64
	WinLoseCorrect     bool
	MVPTypeCorrect     bool
	MVPPositionCorrect bool
}

// Total is the sum of the three legs.
func (b Breakdown) Total() int64 {
	return b.WinLosePoints + b.MVPTypePoints + b.MVPPositionPoints
}

// Evaluable reports whether the prediction carries at least one scorable
// guess. A goll with none produces no point transaction at all.
func (p Prediction) Evaluable() bool {
	return p.WinLoss != nil || p.MVPType != nil || p.MVPPosition != nil
}

// PredictedTeam resolves the Win/Loss call into a concrete team name.
// It returns "" when the call cannot be resolved: no call was made, the
// author has no favorite team, or the favorite team is not playing in
// this game.
func (p Prediction) PredictedTeam(r Result) string {
	if p.WinLoss == nil || p.FavoriteTeam == "" {
		return ""
	}
	var other string
	switch p.FavoriteTeam {
	case r.HomeTeam:
		other = r.AwayTeam
	case r.AwayTeam:
		other = r.HomeTeam
	default:
		return ""
	}
	if *p.WinLoss == models.PredictionWin {
		return p.FavoriteTeam
	}
	return other
}

// Score computes the point breakdown for one prediction against the
// confirmed result.
//
// Rules:
//   - Win/Lose leg: full points when the resolved predicted team equals the
//     confirmed winner. A draw (no winner) scores zero and does not count
//     as correct.
//   - MVP type leg: evaluated only when a type was predicted; full points
//     on an exact match with the confirmed type.
//   - MVP position leg: only reachable when the type leg was correct. The
//     predicted position must belong to the predicted type's enum (the
//     pitcher and batter position sets are disjoint) and equal the
//     confirmed position.
func Score(p Prediction, r Result, t PointTable) Breakdown {
	var b Breakdown

	if predicted := p.PredictedTeam(r); predicted != "" && r.Winner != nil && predicted == *r.Winner {
		b.WinLoseCorrect = true
		b.WinLosePoints = t.WinLosePoints
	}

	if p.MVPType != nil && r.MVPType != nil && *p.MVPType == *r.MVPType {
		b.MVPTypeCorrect = true
		b.MVPTypePoints = t.MVPTypePoints
	}

	if b.MVPTypeCorrect && p.MVPPosition != nil && r.MVPPosition != nil {
		if p.MVPPosition.ValidForType(*p.MVPType) && *p.MVPPosition == *r.MVPPosition {
			b.MVPPositionCorrect = true
			b.MVPPositionPoints = t.MVPPositionPoints
		}
	}

	return b
}

// LikeShare computes the points a liker of a scored goll receives:
// authorTotal x ratio, rounded half away from zero to whole points.
func LikeShare(authorTotal int64, ratio decimal.Decimal) int64 {
	if authorTotal <= 0 || ratio.IsZero() {
		return 0
	}
	return decimal.NewFromInt(authorTotal).Mul(ratio).Round(0).IntPart()
}
