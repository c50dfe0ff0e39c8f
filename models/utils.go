package models

// StatusOf derives the record status implied by a scoring snapshot
func StatusOf(s Snapshot) MatchStatus {
	if s.IsFinished {
		return MatchStatus_FINISHED
	}
	return MatchStatus_IN_PROGRESS
}

// IsDecidingSet determines if both players are one set away from winning the match
func IsDecidingSet(m MatchState) bool {
	last := m.Config.SetsToWin - 1
	return m.Sets.Player1 == last && m.Sets.Player2 == last
}

// ApplyUpdate copies the non-nil fields of u onto r
func ApplyUpdate(r *MatchRecord, u MatchUpdate) {
	if u.Status != nil {
		r.Status = *u.Status
	}
	if u.Score != nil {
		r.Score = *u.Score
	}
	if u.Winner != nil {
		r.Winner = *u.Winner
	}
	if u.CompletedSets != nil {
		r.CompletedSets = u.CompletedSets
	}
}
